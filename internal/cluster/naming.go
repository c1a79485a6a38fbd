package cluster

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/starford/laguz/internal/models"
)

// Group is one named cluster with its member entries, in input order.
type Group struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Entries []*models.Entry `json:"entries"`
}

// Groups clusters entries by content and names each cluster after the two
// keywords its members share most often. Entries without keywords fall back
// to a generic "Cluster N" name.
func Groups(entries []*models.Entry, k int) []Group {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Content
	}
	assignments := Assign(texts, k)

	byID := make(map[int]*Group)
	var order []int
	for i, e := range entries {
		id := assignments[i]
		g, ok := byID[id]
		if !ok {
			g = &Group{ID: id}
			byID[id] = g
			order = append(order, id)
		}
		g.Entries = append(g.Entries, e)
	}
	sort.Ints(order)

	out := make([]Group, 0, len(order))
	for _, id := range order {
		g := byID[id]
		g.Name = nameFor(id, g.Entries)
		out = append(out, *g)
	}
	return out
}

// nameFor joins the two most frequent member keywords, title-cased.
func nameFor(id int, entries []*models.Entry) string {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		for _, kw := range e.Keywords {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	if len(order) == 0 {
		return "Cluster " + strconv.Itoa(id+1)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 2 {
		order = order[:2]
	}
	return titleCase(strings.Join(order, " & "))
}

// titleCase uppercases the first letter of every word.
func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		out := r
		if !unicode.IsLetter(prev) && unicode.IsLetter(r) {
			out = unicode.ToUpper(r)
		}
		prev = r
		return out
	}, s)
}
