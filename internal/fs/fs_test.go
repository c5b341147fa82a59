package fs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func names(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestScanOrdering(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b.txt"), "b")
	mustWrite(t, filepath.Join(dir, "a", "c.txt"), "c")

	snap, err := Scan(dir, false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	got := names(snap.Children)
	want := []string{"a", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("top level = %v, want %v", got, want)
	}
	if !snap.Children[0].IsDir {
		t.Errorf("expected 'a' to be a directory")
	}
	if got := names(snap.Children[0].Children); !reflect.DeepEqual(got, []string{"c.txt"}) {
		t.Errorf("children of 'a' = %v, want [c.txt]", got)
	}
	if snap.Children[1].IsDir {
		t.Errorf("expected 'b.txt' to be a file")
	}
}

func TestScanDirectoriesBeforeFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "aaa.txt"), "")
	mustWrite(t, filepath.Join(dir, "zzz", "x.txt"), "")
	mustWrite(t, filepath.Join(dir, "mmm", "y.txt"), "")
	mustWrite(t, filepath.Join(dir, "Bee.txt"), "")

	snap, err := Scan(dir, false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	got := names(snap.Children)
	want := []string{"mmm", "zzz", "aaa.txt", "Bee.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestScanIdempotent(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "one.txt"), "1")
	mustWrite(t, filepath.Join(dir, "sub", "two.txt"), "2")
	mustWrite(t, filepath.Join(dir, "sub", "deep", "three.txt"), "3")

	first, err := Scan(dir, false)
	if err != nil {
		t.Fatalf("first Scan: %v", err)
	}
	second, err := Scan(dir, false)
	if err != nil {
		t.Fatalf("second Scan: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two scans of an unchanged directory differ")
	}
}

func TestScanHidden(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".hidden"), "")
	mustWrite(t, filepath.Join(dir, "shown.txt"), "")

	t.Run("skipped by default", func(t *testing.T) {
		snap, err := Scan(dir, false)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if got := names(snap.Children); !reflect.DeepEqual(got, []string{"shown.txt"}) {
			t.Errorf("entries = %v, want [shown.txt]", got)
		}
	})

	t.Run("included with showHidden", func(t *testing.T) {
		snap, err := Scan(dir, true)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if got := names(snap.Children); !reflect.DeepEqual(got, []string{".hidden", "shown.txt"}) {
			t.Errorf("entries = %v, want [.hidden shown.txt]", got)
		}
	})
}

func TestScanMissingRoot(t *testing.T) {
	snap, err := Scan(filepath.Join(t.TempDir(), "nope"), false)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if snap != nil {
		t.Errorf("expected nil snapshot on failure, got %+v", snap)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := WriteFileText(path, "hello\nworld\n"); err != nil {
		t.Fatalf("WriteFileText: %v", err)
	}
	got, err := ReadFileText(path)
	if err != nil {
		t.Fatalf("ReadFileText: %v", err)
	}
	if got != "hello\nworld\n" {
		t.Errorf("content = %q", got)
	}

	// A second write fully replaces the prior contents.
	if err := WriteFileText(path, "x"); err != nil {
		t.Fatalf("WriteFileText: %v", err)
	}
	got, err = ReadFileText(path)
	if err != nil {
		t.Fatalf("ReadFileText: %v", err)
	}
	if got != "x" {
		t.Errorf("content after rewrite = %q, want %q", got, "x")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadFileText(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
