package ioutils

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/stickerpack/internal/model"
)

// PackageDirName is the directory under the output root that holds archives.
const PackageDirName = "_zip_packages"

// ErrNothingToPackage is returned when none of the given files exist.
var ErrNothingToPackage = errors.New("nothing to package")

// ZipPackager bundles rendered files into zip archives.
//
// Per-folder archives are named "{folder}_stickers.zip"; the master archive
// holding all per-folder archives is "sticker_packs_{MMDD_HHMM}.zip". Both
// live in {output}/_zip_packages. Entries are stored under their base name
// in the order given; missing files are skipped.
type ZipPackager struct {
	dir string
	now func() time.Time
}

// ZipOption customizes a ZipPackager.
type ZipOption func(*ZipPackager)

// WithClock sets the time source for the master archive name.
func WithClock(now func() time.Time) ZipOption {
	return func(p *ZipPackager) {
		if now != nil {
			p.now = now
		}
	}
}

// NewZipPackager creates a packager writing below outputRoot.
func NewZipPackager(outputRoot string, opts ...ZipOption) *ZipPackager {
	p := &ZipPackager{
		dir: filepath.Join(outputRoot, PackageDirName),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PackageFolder writes the archive for one folder and returns its path.
func (p *ZipPackager) PackageFolder(ctx context.Context, folderName string, files []string) (string, error) {
	path := filepath.Join(p.dir, model.SanitizeFileName(folderName)+"_stickers.zip")
	if err := p.write(ctx, path, files); err != nil {
		return "", fmt.Errorf("package %s: %w", folderName, err)
	}
	return path, nil
}

// CreateMasterPackage writes the archive of all per-folder archives.
func (p *ZipPackager) CreateMasterPackage(ctx context.Context, archives []string) (string, error) {
	name := fmt.Sprintf("sticker_packs_%s.zip", p.now().Format("0102_1504"))
	path := filepath.Join(p.dir, name)
	if err := p.write(ctx, path, archives); err != nil {
		return "", fmt.Errorf("master package: %w", err)
	}
	return path, nil
}

func (p *ZipPackager) write(ctx context.Context, path string, files []string) error {
	var present []string
	for _, f := range files {
		if info, err := os.Stat(f); err == nil && info.Mode().IsRegular() {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return ErrNothingToPackage
	}

	if err := EnsureDir(p.dir); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	for _, f := range present {
		if err := ctx.Err(); err != nil {
			zw.Close()
			out.Close()
			os.Remove(path)
			return err
		}
		if err := addFile(zw, f); err != nil {
			zw.Close()
			out.Close()
			os.Remove(path)
			return err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
