package registry

import (
	"sort"

	"github.com/dshills/switchboard/internal/button"
)

// GetVisible returns the controls whose visibility predicate currently
// holds, in layout order. Predicates run without the lock held.
func (r *Registry) GetVisible() []button.View {
	type candidate struct {
		view    button.View
		visible func() bool
	}

	r.mu.Lock()
	candidates := make([]candidate, 0, len(r.byID))
	for _, e := range r.byID {
		candidates = append(candidates, candidate{view: e.view(), visible: e.desc.Visible})
	}
	r.mu.Unlock()

	views := make([]button.View, 0, len(candidates))
	for _, c := range candidates {
		if r.predicate(c.visible, c.view.ID, "visible") {
			views = append(views, c.view)
		}
	}
	SortViews(views)
	return views
}

// GetAll returns every control, hidden ones included, in layout order.
func (r *Registry) GetAll() []button.View {
	r.mu.Lock()
	views := make([]button.View, 0, len(r.byID))
	for _, e := range r.byID {
		views = append(views, e.view())
	}
	r.mu.Unlock()

	SortViews(views)
	return views
}

// GetByCategory returns the controls in one category, in layout order.
func (r *Registry) GetByCategory(c button.Category) []button.View {
	r.mu.Lock()
	views := r.viewsOf(r.byCategory[c])
	r.mu.Unlock()

	SortViews(views)
	return views
}

// GetByOwner returns the controls registered by owner, in layout order.
func (r *Registry) GetByOwner(owner string) []button.View {
	r.mu.Lock()
	views := r.viewsOf(r.byOwner[owner])
	r.mu.Unlock()

	SortViews(views)
	return views
}

// CountByCategory returns the number of controls per category, hidden
// ones included. Categories without controls are omitted.
func (r *Registry) CountByCategory() map[button.Category]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[button.Category]int, len(r.byCategory))
	for c, set := range r.byCategory {
		counts[c] = len(set)
	}
	return counts
}

// viewsOf snapshots the entries named in set. Caller holds r.mu.
func (r *Registry) viewsOf(set idSet) []button.View {
	views := make([]button.View, 0, len(set))
	for id := range set {
		if e, ok := r.byID[id]; ok {
			views = append(views, e.view())
		}
	}
	return views
}

// SortViews orders views by descending priority, then category order,
// then name, then id.
func SortViews(views []button.View) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if ao, bo := a.Category.SortOrder(), b.Category.SortOrder(); ao != bo {
			return ao < bo
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
