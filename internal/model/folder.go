package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultSubtitle is used when a folder name carries no subtitle.
const DefaultSubtitle = "Sticker Collection"

// FolderRecord represents one sticker folder selected for processing.
//
// FolderRecord contains everything the compositor needs:
//   - Images in stable filename order (this order decides grid slots)
//   - Title and Subtitle derived from the folder name
//   - MainImage, the representative image for the hero template
//
// A FolderRecord is only constructed for folders that passed the
// minimum image threshold.
type FolderRecord struct {
	// Path is the source folder location.
	Path string

	// Name is the folder's original base name.
	Name string

	// Images holds the qualifying image files, sorted by filename.
	Images []string

	// Title is the display title drawn in the hero header.
	Title string

	// Subtitle is drawn below the title.
	Subtitle string

	// MainImage is one element of Images. Empty only when Images is empty.
	MainImage string
}

// NewFolderRecord creates a record for the folder at path with the given
// already-sorted images. Title, Subtitle and MainImage are left for the
// caller to fill in.
func NewFolderRecord(path string, images []string) *FolderRecord {
	return &FolderRecord{
		Path:   path,
		Name:   filepath.Base(path),
		Images: images,
	}
}

// ImageCount returns the number of qualifying images.
func (f *FolderRecord) ImageCount() int {
	return len(f.Images)
}

// CountLabel returns the image count as shown to users, e.g. "12 images".
func (f *FolderRecord) CountLabel() string {
	if f.ImageCount() == 1 {
		return "1 image"
	}
	return fmt.Sprintf("%d images", f.ImageCount())
}

// HasMainImage reports whether a main image was selected.
func (f *FolderRecord) HasMainImage() bool {
	return f.MainImage != ""
}

// DisplayTitle returns Title, or the folder name when no title was derived.
func (f *FolderRecord) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// OutputDir returns the directory that receives a folder's rendered files.
func OutputDir(outputRoot, folderName string) string {
	return filepath.Join(outputRoot, SanitizeFileName(folderName))
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Non-ASCII characters such as the middle dot are kept as-is.
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
