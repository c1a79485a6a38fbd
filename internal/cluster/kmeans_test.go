package cluster

import (
	"reflect"
	"testing"

	"github.com/starford/laguz/internal/models"
)

var twoTopicTexts = []string{
	"cooking pasta tonight with fresh tomato sauce and basil from the garden",
	"baking bread and cooking soup filled the kitchen with wonderful smells",
	"tried cooking a new recipe with garlic and tomato for dinner",
	"debugging the compiler error took hours of reading programming documentation",
	"refactored the programming project and fixed a nasty compiler bug",
	"learning a new programming language means fighting the compiler daily",
}

func TestAssignFewerTextsThanK(t *testing.T) {
	got := Assign([]string{"one entry", "another entry"}, 5)
	want := []int{0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Assign = %v, want %v", got, want)
	}
}

func TestAssignSingleCluster(t *testing.T) {
	got := Assign(twoTopicTexts, 1)
	for i, id := range got {
		if id != 0 {
			t.Errorf("k=1 assignment[%d] = %d, want 0", i, id)
		}
	}
}

func TestAssignEmptyInput(t *testing.T) {
	if got := Assign(nil, 3); len(got) != 0 {
		t.Errorf("Assign(nil) = %v", got)
	}
}

func TestAssignStopWordOnlyTexts(t *testing.T) {
	texts := []string{"the and of", "a an it", "to from by"}
	got := Assign(texts, 2)
	want := []int{0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("degenerate vocabulary Assign = %v, want %v", got, want)
	}
}

func TestAssignDeterministic(t *testing.T) {
	first := Assign(twoTopicTexts, 2)
	for i := 0; i < 5; i++ {
		if got := Assign(twoTopicTexts, 2); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}

func TestAssignSeparatesTopics(t *testing.T) {
	got := Assign(twoTopicTexts, 2)

	// The three cooking texts must share a cluster, likewise the three
	// programming texts, and the two clusters must differ.
	cooking := got[0]
	for i := 1; i < 3; i++ {
		if got[i] != cooking {
			t.Fatalf("cooking texts split: %v", got)
		}
	}
	programming := got[3]
	for i := 4; i < 6; i++ {
		if got[i] != programming {
			t.Fatalf("programming texts split: %v", got)
		}
	}
	if cooking == programming {
		t.Fatalf("topics not separated: %v", got)
	}
}

func TestGroupsNaming(t *testing.T) {
	entries := []*models.Entry{
		{Content: twoTopicTexts[0], Keywords: []string{"cooking", "tomato"}},
		{Content: twoTopicTexts[1], Keywords: []string{"cooking", "bread"}},
		{Content: twoTopicTexts[2], Keywords: []string{"cooking", "tomato"}},
		{Content: twoTopicTexts[3], Keywords: []string{"programming", "compiler"}},
		{Content: twoTopicTexts[4], Keywords: []string{"programming", "compiler"}},
		{Content: twoTopicTexts[5], Keywords: []string{"programming", "compiler"}},
	}
	groups := Groups(entries, 2)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].ID >= groups[1].ID {
		t.Errorf("groups not ordered by id: %d, %d", groups[0].ID, groups[1].ID)
	}

	var names []string
	total := 0
	for _, g := range groups {
		names = append(names, g.Name)
		total += len(g.Entries)
	}
	if total != len(entries) {
		t.Errorf("entries across groups = %d, want %d", total, len(entries))
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["Cooking & Tomato"] {
		t.Errorf("missing cooking cluster name, got %v", names)
	}
	if !found["Programming & Compiler"] {
		t.Errorf("missing programming cluster name, got %v", names)
	}
}

func TestGroupsFallbackName(t *testing.T) {
	entries := []*models.Entry{
		{Content: "plain text without annotations"},
		{Content: "more plain text here"},
	}
	groups := Groups(entries, 5)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].Name != "Cluster 1" {
		t.Errorf("fallback name = %q, want %q", groups[0].Name, "Cluster 1")
	}
}
