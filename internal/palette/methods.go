package palette

import (
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"

	"github.com/handiism/stickerpack/internal/model"
)

const (
	dominantCandidates = 8
	kmeansClusters     = 4

	kmeansMaxIterations = 50
)

// dominantColor picks the heaviest dominantcolor candidate that is not
// near-white.
func dominantColor(sample *image.NRGBA) (model.Color, bool) {
	candidates := dominantcolor.FindWeight(sample, dominantCandidates)

	best := -1
	for i, c := range candidates {
		if !(c.Weight > 0) || nearWhite(int(c.RGBA.R), int(c.RGBA.G), int(c.RGBA.B)) {
			continue
		}
		if best < 0 || c.Weight > candidates[best].Weight {
			best = i
		}
	}
	if best < 0 {
		return model.Color{}, false
	}

	col, _ := colorful.MakeColor(candidates[best].RGBA)
	return model.FromColorful(col), true
}

// kmeansColor clusters the non-white pixels and returns the center of the
// most populated cluster. Ties go to the cluster seeded first.
func kmeansColor(sample *image.NRGBA) (model.Color, bool) {
	b := sample.Bounds()
	dataset := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := sample.NRGBAAt(x, y)
			if nearWhite(int(c.R), int(c.G), int(c.B)) {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return model.Color{}, false
	}

	cc := partition(dataset, min(kmeansClusters, len(dataset)))

	best := 0
	for i := range cc {
		if len(cc[i].Observations) > len(cc[best].Observations) {
			best = i
		}
	}

	center := cc[best].Center
	if len(center) < 3 {
		return model.Color{}, false
	}
	return model.FromColorful(colorful.Color{R: center[0], G: center[1], B: center[2]}), true
}

// partition runs Lloyd's k-means with farthest-point seeding: the first
// center is the dataset mean, each further center is the observation
// farthest from all centers chosen so far (earliest wins ties). The result
// depends only on the dataset and its order.
func partition(dataset clusters.Observations, k int) clusters.Clusters {
	mean, _ := dataset.Center()
	cc := clusters.Clusters{{Center: mean}}

	for len(cc) < k {
		far, farDist := -1, -1.0
		for i, obs := range dataset {
			d := nearestDistance(cc, obs)
			if d > farDist {
				far, farDist = i, d
			}
		}
		if farDist <= 0 {
			break
		}
		seed := append(clusters.Coordinates(nil), dataset[far].Coordinates()...)
		cc = append(cc, clusters.Cluster{Center: seed})
	}

	assign := make([]int, len(dataset))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i := range cc {
			cc[i].Observations = nil
		}
		for i, obs := range dataset {
			n := nearest(cc, obs)
			if n != assign[i] {
				assign[i] = n
				changed = true
			}
			cc[n].Append(obs)
		}
		if !changed {
			break
		}
		for i := range cc {
			if center, err := cc[i].Observations.Center(); err == nil {
				cc[i].Center = center
			}
		}
	}
	return cc
}

func nearest(cc clusters.Clusters, obs clusters.Observation) int {
	best, bestDist := 0, obs.Distance(cc[0].Center)
	for i := 1; i < len(cc); i++ {
		if d := obs.Distance(cc[i].Center); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func nearestDistance(cc clusters.Clusters, obs clusters.Observation) float64 {
	return obs.Distance(cc[nearest(cc, obs)].Center)
}
