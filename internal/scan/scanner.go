package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/handiism/stickerpack/internal/model"
)

var (
	// ErrRootNotFound is returned when the collection folder does not exist.
	// It matches fs.ErrNotExist as well.
	ErrRootNotFound = fmt.Errorf("collection folder not found: %w", fs.ErrNotExist)

	// ErrTooFewImages is returned by ScanFolder for folders below the threshold.
	ErrTooFewImages = errors.New("too few images")
)

// SupportedExtensions lists the image extensions considered, lowercase with dot.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// junkMarkers exclude thumbnails and tab UI images when found in a file's
// base name (without extension).
var junkMarkers = []string{"_key", "_s.", "tab_off", "tab_on"}

// mainImageKeywords select the main image among the first mainImageWindow
// sorted images.
var mainImageKeywords = []string{"main", "cover", "01", "1_"}

const mainImageWindow = 5

// Scanner enumerates sticker folders.
type Scanner struct {
	minImages int
	onSkip    func(name string, err error)
}

// NewScanner creates a Scanner that keeps folders with at least minImages
// images. onSkip is called for every folder Scan leaves out, with an error
// wrapping ErrTooFewImages or the read failure; it may be nil.
func NewScanner(minImages int, onSkip func(name string, err error)) *Scanner {
	return &Scanner{
		minImages: minImages,
		onSkip:    onSkip,
	}
}

// Scan returns a record for every qualifying subdirectory of root, in
// lexicographic order. Hidden (dot-prefixed) directories are ignored.
//
// A missing root returns an error wrapping ErrRootNotFound. Folders below
// the threshold or unreadable folders are reported through onSkip and
// left out.
func (s *Scanner) Scan(root string) ([]*model.FolderRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var folders []*model.FolderRecord
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		folder, err := s.ScanFolder(filepath.Join(root, entry.Name()))
		if err != nil {
			if s.onSkip != nil {
				s.onSkip(entry.Name(), err)
			}
			continue
		}
		folders = append(folders, folder)
	}

	return folders, nil
}

// ScanFolder builds the record for a single folder.
func (s *Scanner) ScanFolder(path string) (*model.FolderRecord, error) {
	images, err := ListImages(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if len(images) < s.minImages {
		return nil, fmt.Errorf("%s: %w (%d, need %d)", name, ErrTooFewImages, len(images), s.minImages)
	}

	folder := model.NewFolderRecord(path, images)
	folder.Title, folder.Subtitle = ParseFolderName(name)
	folder.MainImage = SelectMainImage(images)

	return folder, nil
}

// ListImages returns the qualifying image files of dir sorted by filename.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, dir)
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !isImageFile(name) || isJunk(name) {
			continue
		}
		if !entry.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, name)
	}
	slices.Sort(names)

	images := make([]string, len(names))
	for i, n := range names {
		images[i] = filepath.Join(dir, n)
	}
	return images, nil
}

// SelectMainImage returns the first of the leading images whose name
// contains a main-image keyword, or the first image.
func SelectMainImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	for _, img := range images[:min(mainImageWindow, len(images))] {
		lower := strings.ToLower(stem(img))
		for _, kw := range mainImageKeywords {
			if strings.Contains(lower, kw) {
				return img
			}
		}
	}
	return images[0]
}

func isImageFile(name string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

func isJunk(name string) bool {
	s := stem(name)
	for _, marker := range junkMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
