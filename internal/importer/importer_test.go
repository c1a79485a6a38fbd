package importer

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/store"
	"github.com/starford/laguz/internal/testutil"
)

func TestParseDraftFrontmatter(t *testing.T) {
	data := []byte(`---
title: Rainy Sunday
date: 2024-03-10
mood: calm
tags:
  - weather
  - rest
private: false
---

Stayed inside all day listening to the rain. #cozy
`)
	d := parseDraft(data)
	if d.Title != "Rainy Sunday" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Date != "2024-03-10" {
		t.Errorf("date = %q", d.Date)
	}
	if d.Mood != "calm" {
		t.Errorf("mood = %q", d.Mood)
	}
	if d.IsPrivate == nil || *d.IsPrivate {
		t.Error("private: false not honored")
	}
	want := []string{"weather", "rest", "cozy"}
	if !reflect.DeepEqual(d.Tags, want) {
		t.Errorf("tags = %v, want %v", d.Tags, want)
	}
	if d.Content != "Stayed inside all day listening to the rain. #cozy\n" {
		t.Errorf("content = %q", d.Content)
	}
}

func TestParseDraftNoFrontmatter(t *testing.T) {
	d := parseDraft([]byte("# Headline\n\nplain body text"))
	if d.Title != "Headline" {
		t.Errorf("title from heading = %q", d.Title)
	}
	if d.IsPrivate != nil {
		t.Error("absent private flag should stay unset")
	}
}

func TestParseDraftInvalidYAML(t *testing.T) {
	data := []byte("---\n: : bad yaml [\n---\nbody text")
	d := parseDraft(data)
	if d.Title != "" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Content != string(data) {
		t.Errorf("invalid frontmatter should leave content untouched: %q", d.Content)
	}
}

func TestParseDraftCommaSeparatedTags(t *testing.T) {
	data := []byte("---\ntags: work, family\n---\nbody")
	d := parseDraft(data)
	want := []string{"work", "family"}
	if !reflect.DeepEqual(d.Tags, want) {
		t.Errorf("tags = %v, want %v", d.Tags, want)
	}
}

func TestSweepImportsAndArchives(t *testing.T) {
	root := t.TempDir()
	s := store.NewLocal(filepath.Join(t.TempDir(), "entries.json"))
	t.Cleanup(func() { s.Close() })
	svc := journal.NewService(testutil.TestAnalyzer(t), s, journal.DefaultOptions())

	content := "---\ntitle: Dropped\n---\nToday was wonderful and I felt great\n"
	if err := os.WriteFile(filepath.Join(root, "note.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-markdown files are ignored.
	if err := os.WriteFile(filepath.Join(root, "ignore.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	im := New(svc, nil, testutil.Logger(), root)
	im.sweep(context.Background())

	entries, err := s.List(10, store.OrderByCreatedAt, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("imported entries = %d, want 1", len(entries))
	}
	if entries[0].Title != "Dropped" {
		t.Errorf("title = %q", entries[0].Title)
	}
	if entries[0].Summary == "" {
		t.Error("imported entry not annotated")
	}

	// Original moved to archive.
	if _, err := os.Stat(filepath.Join(root, "note.md")); !os.IsNotExist(err) {
		t.Error("original file still in inbox")
	}
	if _, err := os.Stat(filepath.Join(root, "archive", "note.md")); err != nil {
		t.Errorf("archived file missing: %v", err)
	}
}

func TestSweepSkipsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	s := store.NewLocal(filepath.Join(t.TempDir(), "entries.json"))
	t.Cleanup(func() { s.Close() })
	svc := journal.NewService(testutil.TestAnalyzer(t), s, journal.DefaultOptions())

	if err := os.WriteFile(filepath.Join(root, "empty.md"), []byte("   \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	im := New(svc, nil, testutil.Logger(), root)
	im.sweep(context.Background())

	entries, err := s.List(10, store.OrderByCreatedAt, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty file imported: %d entries", len(entries))
	}
	// Skipped files stay in the inbox for the author to fix.
	if _, err := os.Stat(filepath.Join(root, "empty.md")); err != nil {
		t.Errorf("empty file should remain: %v", err)
	}
}
