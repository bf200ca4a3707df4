package behaviors

import (
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/similarity"
)

// Group is a proposed behavior: a representative name and the unlinked
// entries that would join it.
type Group struct {
	Key     string
	Entries []models.Entry
}

// AutoGroup proposes groups for every entry without a behavior, in
// collection order. Each entry joins the first in-progress group whose key
// is similar enough, otherwise the first similar existing behavior (by name),
// otherwise a new group keyed by its own action. Nothing is written.
func (e *Engine) AutoGroup() []Group {
	threshold := similarity.DefaultThreshold
	var groups []Group
	byKey := make(map[string]int)

	add := func(key string, entry models.Entry) {
		if i, ok := byKey[key]; ok {
			groups[i].Entries = append(groups[i].Entries, entry)
			return
		}
		byKey[key] = len(groups)
		groups = append(groups, Group{Key: key, Entries: []models.Entry{entry}})
	}

	for _, entry := range e.entries.All() {
		if entry.IsLinked() {
			continue
		}

		matched := false
		for i := range groups {
			if similarity.Similar(entry.Action, groups[i].Key, threshold) {
				groups[i].Entries = append(groups[i].Entries, entry)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if similar := e.FindSimilar(entry.Action, threshold); len(similar) > 0 {
			add(similar[0].Name, entry)
			continue
		}

		add(entry.Action, entry)
	}

	return groups
}

// CommitGroups turns proposed groups into behaviors and links their entries.
// A behavior whose name equals the key (ignoring case) is reused; otherwise
// one is created with the first member's category, or fallback when that is
// empty. It returns the number of entries linked.
func (e *Engine) CommitGroups(groups []Group, fallback models.Category) (int, error) {
	linked := 0
	for _, g := range groups {
		if len(g.Entries) == 0 {
			continue
		}

		b, ok := e.GetByName(g.Key)
		if !ok {
			category := g.Entries[0].Category
			if category == "" {
				category = fallback
			}
			var err error
			if b, err = e.Create(g.Key, category); err != nil {
				return linked, err
			}
		}

		for _, entry := range g.Entries {
			if err := e.Link(entry.ID, b.ID); err != nil {
				return linked, err
			}
			linked++
		}
	}
	return linked, nil
}

// Worthwhile drops single-entry groups unless their key names an existing
// behavior.
func (e *Engine) Worthwhile(groups []Group) []Group {
	var kept []Group
	for _, g := range groups {
		if len(g.Entries) > 1 {
			kept = append(kept, g)
		} else if _, ok := e.GetByName(g.Key); ok {
			kept = append(kept, g)
		}
	}
	return kept
}
