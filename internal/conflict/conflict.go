// Package conflict reports overlapping control metadata across owners.
//
// Duplicates are allowed by the registry. The resolver only describes them
// so operators can see when two extensions document the same original
// keybind or reuse a display name. It never mutates anything and publishes
// no events.
package conflict

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/dshills/switchboard/internal/button"
)

// Source supplies the controls to inspect. *registry.Registry satisfies it.
type Source interface {
	GetAll() []button.View
}

// Group is a set of controls sharing a normalized key.
type Group struct {
	Key     string
	Members []button.View
}

// Owners returns the distinct owners in the group, sorted.
func (g Group) Owners() []string {
	seen := make(map[string]struct{}, len(g.Members))
	owners := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if _, ok := seen[m.Owner]; ok {
			continue
		}
		seen[m.Owner] = struct{}{}
		owners = append(owners, m.Owner)
	}
	sort.Strings(owners)
	return owners
}

// CrossOwner reports whether more than one owner is involved.
func (g Group) CrossOwner() bool {
	return len(g.Owners()) > 1
}

// IDs returns the member ids in group order.
func (g Group) IDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// Resolver groups controls by keybind documentation and display name.
type Resolver struct {
	src Source
}

// New creates a resolver over src.
func New(src Source) *Resolver {
	return &Resolver{src: src}
}

// DetectDuplicateKeybindDocs groups controls whose OriginalKeybind matches
// case-insensitively. Controls without one are ignored.
func (r *Resolver) DetectDuplicateKeybindDocs() []Group {
	return duplicates(r.src.GetAll(), func(v button.View) string { return v.OriginalKeybind })
}

// DetectDuplicateNames groups controls whose display name matches
// case-insensitively.
func (r *Resolver) DetectDuplicateNames() []Group {
	return duplicates(r.src.GetAll(), func(v button.View) string { return v.Name })
}

// Report runs both detections over a single snapshot.
func (r *Resolver) Report() Report {
	views := r.src.GetAll()
	return Report{
		Keybinds: duplicates(views, func(v button.View) string { return v.OriginalKeybind }),
		Names:    duplicates(views, func(v button.View) string { return v.Name }),
	}
}

// normalize folds a key for comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func duplicates(views []button.View, key func(button.View) string) []Group {
	buckets := make(map[string][]button.View)
	for _, v := range views {
		k := normalize(key(v))
		if k == "" {
			continue
		}
		buckets[k] = append(buckets[k], v)
	}

	var groups []Group
	for k, members := range buckets {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		groups = append(groups, Group{Key: k, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// Report holds the findings of one pass.
type Report struct {
	Keybinds []Group
	Names    []Group
}

// Empty reports whether no duplicates were found.
func (r Report) Empty() bool {
	return len(r.Keybinds) == 0 && len(r.Names) == 0
}

// CrossOwner returns the number of groups that span owners.
func (r Report) CrossOwner() int {
	n := 0
	for _, g := range r.Keybinds {
		if g.CrossOwner() {
			n++
		}
	}
	for _, g := range r.Names {
		if g.CrossOwner() {
			n++
		}
	}
	return n
}

// Log writes the findings. Cross-owner groups are warnings; groups within a
// single owner are logged at debug.
func (r Report) Log(logger hclog.Logger) {
	logGroups(logger, "keybind", r.Keybinds)
	logGroups(logger, "name", r.Names)
}

func logGroups(logger hclog.Logger, kind string, groups []Group) {
	for _, g := range groups {
		args := []interface{}{"kind", kind, "key", g.Key, "ids", g.IDs(), "owners", g.Owners()}
		if g.CrossOwner() {
			logger.Warn("duplicate button metadata across owners", args...)
		} else {
			logger.Debug("duplicate button metadata within owner", args...)
		}
	}
}
