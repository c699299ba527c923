package scan

import (
	"regexp"
	"strings"

	"github.com/handiism/stickerpack/internal/model"
)

// DefaultSubtitle is used when the folder name has no subtitle separator.
const DefaultSubtitle = model.DefaultSubtitle

var ordinalPrefix = regexp.MustCompile(`^(\d+)[.\-_\s]*(.+)$`)

// subtitleSeparators are tried in order; only the first one found is used.
var subtitleSeparators = []string{"·", "|"}

// ParseFolderName derives the display title and subtitle from a folder name.
//
// A leading ordinal ("03_", "12 - ", "7.") is stripped, underscores and
// hyphens become spaces, and the result is split on the first "·" or,
// failing that, the first "|". The subtitle is the segment right after
// the separator.
func ParseFolderName(name string) (title, subtitle string) {
	title = name
	if m := ordinalPrefix.FindStringSubmatch(name); m != nil {
		title = strings.TrimSpace(m[2])
	}

	title = strings.NewReplacer("_", " ", "-", " ").Replace(title)
	title = strings.TrimSpace(title)

	subtitle = DefaultSubtitle
	for _, sep := range subtitleSeparators {
		if !strings.Contains(title, sep) {
			continue
		}
		parts := strings.Split(title, sep)
		title = strings.TrimSpace(parts[0])
		if sub := strings.TrimSpace(parts[1]); sub != "" {
			subtitle = sub
		}
		break
	}

	return title, subtitle
}
