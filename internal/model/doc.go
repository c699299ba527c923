// Package model defines the core data structures used throughout
// the stickerpack application.
//
// # FolderRecord
//
// FolderRecord describes one scanned sticker folder: its sorted image list,
// the derived title and subtitle, and the representative main image:
//
//	folder := model.NewFolderRecord("/stickers/03_Happy·Cats", images)
//	fmt.Println(folder.ImageCount()) // Always len(folder.Images)
//
// Records are built by the scan package and never modified afterwards.
//
// # Templates
//
// Templates lists the four fixed layouts in generation order:
//
//	for _, tmpl := range model.Templates {
//	    fmt.Println(tmpl.FileName(folder.Name)) // "01_hero_03_Happy·Cats.jpg", ...
//	}
//
// # Output Paths
//
// OutputDir and Template.OutputPath compute where rendered files go:
//
//	{output}/{folderName}/{index:02d}_{label}_{folderName}.jpg
package model
