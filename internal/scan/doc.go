// Package scan discovers sticker folders inside a collection directory.
//
// A collection is a directory whose immediate subdirectories each hold one
// sticker pack:
//
//	collection/
//	  01_Happy·Cats/   01.png 02.png ... tab_on.png
//	  02_Dogs|Vol 2/   cover.webp a.gif ...
//
// The Scanner keeps folders with enough images, drops UI chrome and
// thumbnail keys, sorts images by filename and derives a title, subtitle
// and main image for each folder:
//
//	scanner := scan.NewScanner(15, func(name string, err error) {
//	    fmt.Printf("skipping %s: %v\n", name, err)
//	})
//	folders, err := scanner.Scan("/stickers")
//	if errors.Is(err, scan.ErrRootNotFound) {
//	    // fatal: nothing to process
//	}
package scan
