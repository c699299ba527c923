package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestParseFolderName(t *testing.T) {
	tests := []struct {
		name         string
		wantTitle    string
		wantSubtitle string
	}{
		{"03_Happy·Cats", "Happy", "Cats"},
		{"12 - Office|Monday Mood", "Office", "Monday Mood"},
		{"7.Sleepy_Panda", "Sleepy Panda", DefaultSubtitle},
		{"Grumpy-Dog", "Grumpy Dog", DefaultSubtitle},
		{"Plain", "Plain", DefaultSubtitle},
		{"05_A·B·C", "A", "B"},
		{"06_Cats·", "Cats", DefaultSubtitle},
		{"08_Pipe|Dot·Mix", "Pipe|Dot", "Mix"},
		{"2024", "4", DefaultSubtitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, subtitle := ParseFolderName(tt.name)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if subtitle != tt.wantSubtitle {
				t.Errorf("subtitle = %q, want %q", subtitle, tt.wantSubtitle)
			}
		})
	}
}

func TestSelectMainImage(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{"empty", nil, ""},
		{"no keyword falls back to first", []string{"/d/a.png", "/d/b.png"}, "/d/a.png"},
		{"cover keyword", []string{"/d/a.png", "/d/b.png", "/d/Cover.png"}, "/d/Cover.png"},
		{"main keyword", []string{"/d/a.png", "/d/xMAINx.gif"}, "/d/xMAINx.gif"},
		{"ordinal keyword", []string{"/d/a.png", "/d/sticker01.png"}, "/d/sticker01.png"},
		{"only first five considered", []string{"/d/a.png", "/d/b.png", "/d/c.png", "/d/d.png", "/d/e.png", "/d/main.png"}, "/d/a.png"},
		{"first match wins", []string{"/d/a.png", "/d/cover.png", "/d/main.png"}, "/d/cover.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMainImage(tt.images); got != tt.want {
				t.Errorf("SelectMainImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListImages_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"b.png", "a.JPG", "c.webp", "d.bmp", "e.gif", "f.jpeg",
		"notes.txt", "tab_on.png", "tab_off.png", "sticker_key.png", "x_s.thumb.png",
	)
	touch(t, filepath.Join(dir, "nested.png"))

	images, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages() error: %v", err)
	}

	want := []string{"a.JPG", "b.png", "c.webp", "d.bmp", "e.gif", "f.jpeg"}
	if got := baseNames(images); !reflect.DeepEqual(got, want) {
		t.Errorf("ListImages() = %v, want %v", got, want)
	}
}

func TestListImages_FollowsSymlinks(t *testing.T) {
	shared := t.TempDir()
	touch(t, shared, "cat.png")
	touch(t, filepath.Join(shared, "album.png"))

	dir := t.TempDir()
	touch(t, dir, "a.png")
	links := map[string]string{
		"b.png":        filepath.Join(shared, "cat.png"),
		"dangling.png": filepath.Join(shared, "missing.png"),
		"folder.png":   filepath.Join(shared, "album.png"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	images, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages() error: %v", err)
	}

	want := []string{"a.png", "b.png"}
	if got := baseNames(images); !reflect.DeepEqual(got, want) {
		t.Errorf("ListImages() = %v, want %v", got, want)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "02_Dogs"), "1.png", "2.png", "3.png")
	touch(t, filepath.Join(root, "01_Cats"), "c.png", "a.png", "b.png", "tab_on.png")
	touch(t, filepath.Join(root, "03_Tiny"), "1.png", "2.png")
	touch(t, filepath.Join(root, ".hidden"), "1.png", "2.png", "3.png")
	touch(t, root, "loose.png")

	var skipped []string
	scanner := NewScanner(3, func(name string, err error) {
		if !errors.Is(err, ErrTooFewImages) {
			t.Errorf("unexpected skip reason for %s: %v", name, err)
		}
		skipped = append(skipped, name)
	})

	folders, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}
	if folders[0].Name != "01_Cats" || folders[1].Name != "02_Dogs" {
		t.Errorf("folder order = %s, %s", folders[0].Name, folders[1].Name)
	}
	for _, f := range folders {
		if f.ImageCount() < 3 {
			t.Errorf("%s has %d images, below threshold", f.Name, f.ImageCount())
		}
		if f.ImageCount() != len(f.Images) {
			t.Errorf("%s: ImageCount() != len(Images)", f.Name)
		}
	}

	cats := folders[0]
	if got := baseNames(cats.Images); !reflect.DeepEqual(got, []string{"a.png", "b.png", "c.png"}) {
		t.Errorf("Cats images = %v", got)
	}
	if cats.Title != "Cats" || cats.Subtitle != DefaultSubtitle {
		t.Errorf("Cats title/subtitle = %q/%q", cats.Title, cats.Subtitle)
	}
	if cats.MainImage != cats.Images[0] {
		t.Errorf("Cats main image = %q, want first image", cats.MainImage)
	}

	dogs := folders[1]
	if filepath.Base(dogs.MainImage) != "1.png" {
		t.Errorf("Dogs main image = %q, want 1.png", dogs.MainImage)
	}

	if !reflect.DeepEqual(skipped, []string{"03_Tiny"}) {
		t.Errorf("skipped = %v, want [03_Tiny]", skipped)
	}
}

func TestScan_Deterministic(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "pack"), "z.png", "m.png", "a.png", "k.gif", "b.webp")

	scanner := NewScanner(1, nil)
	first, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := scanner.Scan(root)
		if err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
		if !reflect.DeepEqual(first[0].Images, again[0].Images) {
			t.Fatalf("image order changed between scans: %v vs %v", first[0].Images, again[0].Images)
		}
	}
}

func TestScan_MissingRoot(t *testing.T) {
	scanner := NewScanner(1, nil)
	_, err := scanner.Scan(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("error %v should wrap ErrRootNotFound", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should match fs.ErrNotExist", err)
	}
}

func TestScanFolder_TooFewImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "09_Few")
	touch(t, dir, "1.png")

	_, err := NewScanner(2, nil).ScanFolder(dir)
	if !errors.Is(err, ErrTooFewImages) {
		t.Errorf("ScanFolder() error = %v, want ErrTooFewImages", err)
	}

	folder, err := NewScanner(1, nil).ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder() error: %v", err)
	}
	if folder.Title != "Few" {
		t.Errorf("Title = %q, want Few", folder.Title)
	}
}
