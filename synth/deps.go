package synth

// DependencyTracker accumulates, per synthesized type, the set of named
// types it references. Entries are unique and kept in first-reference order
// so downstream import and emission ordering is deterministic. Cycles are
// legal: the tracker records edges, it does not walk them.
type DependencyTracker struct {
	byType map[string][]string
	seen   map[string]map[string]bool
}

// NewDependencyTracker returns an empty tracker.
func NewDependencyTracker() *DependencyTracker {
	return &DependencyTracker{
		byType: make(map[string][]string),
		seen:   make(map[string]map[string]bool),
	}
}

// Record notes that dependent references the named type ref. Self-references
// are recorded too; emitters that cannot forward-declare must handle them.
func (d *DependencyTracker) Record(dependent, ref string) {
	if dependent == "" || ref == "" {
		return
	}
	if d.seen[dependent] == nil {
		d.seen[dependent] = make(map[string]bool)
	}
	if d.seen[dependent][ref] {
		return
	}
	d.seen[dependent][ref] = true
	d.byType[dependent] = append(d.byType[dependent], ref)
}

// DepsOf returns the recorded dependencies of name in first-reference order.
// The returned slice is shared; callers must not modify it.
func (d *DependencyTracker) DepsOf(name string) []string {
	return d.byType[name]
}
