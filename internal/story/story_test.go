package story

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsPlaceholder(t *testing.T) {
	l := Loader{Path: filepath.Join(t.TempDir(), "nope.txt")}
	if got := l.Load(); got != Placeholder {
		t.Errorf("Load() = %q, want placeholder", got)
	}
}

func TestLoad_ReadsAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	if err := os.WriteFile(path, []byte("  從前從前，有一間柑仔店。\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := Loader{Path: path}
	if got := l.Load(); got != "從前從前，有一間柑仔店。" {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoad_TruncatesByRunes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	if err := os.WriteFile(path, []byte("一二三四五六七八九十"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := Loader{Path: path, MaxChars: 4}
	if got := l.Load(); got != "一二三四" {
		t.Errorf("Load() = %q, want 一二三四", got)
	}
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q", got)
	}
}
