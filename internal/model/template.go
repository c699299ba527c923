package model

import (
	"fmt"
	"path/filepath"
)

// TemplateKind distinguishes the two layout recipes.
type TemplateKind int

const (
	// KindHero is the header band plus a 3x3 grid.
	KindHero TemplateKind = iota

	// KindGrid is a full-page 3x5 grid.
	KindGrid
)

// String returns the lowercase kind name.
func (k TemplateKind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Template is one of the four fixed layouts applied to every folder.
type Template struct {
	// Index is the 1-based generation order, also used as the file prefix.
	Index int

	// Label distinguishes the template in file names ("hero", "grid1", ...).
	Label string

	// Kind selects the layout recipe.
	Kind TemplateKind

	// StartIndex is the first image used by grid templates.
	StartIndex int

	// Key is the name of the enable flag in the configuration.
	Key string
}

// GridPageSize is the number of images on a grid template.
const GridPageSize = 15

// Templates lists the fixed templates in generation order: hero first,
// then the three grid pages starting at images 0, 15 and 30.
var Templates = []Template{
	{Index: 1, Label: "hero", Kind: KindHero, Key: "template1"},
	{Index: 2, Label: "grid1", Kind: KindGrid, StartIndex: 0, Key: "template2"},
	{Index: 3, Label: "grid2", Kind: KindGrid, StartIndex: GridPageSize, Key: "template3"},
	{Index: 4, Label: "grid3", Kind: KindGrid, StartIndex: 2 * GridPageSize, Key: "template4"},
}

// FileName returns "{index:02d}_{label}_{folderName}.jpg".
func (t Template) FileName(folderName string) string {
	return SanitizeFileName(fmt.Sprintf("%02d_%s_%s.jpg", t.Index, t.Label, folderName))
}

// OutputPath returns the full path of the rendered file for a folder.
func (t Template) OutputPath(outputRoot, folderName string) string {
	return filepath.Join(OutputDir(outputRoot, folderName), t.FileName(folderName))
}

// TemplateOutput records one generated file.
type TemplateOutput struct {
	FolderName    string `json:"folder"`
	TemplateIndex int    `json:"template"`
	FilePath      string `json:"file"`
}
