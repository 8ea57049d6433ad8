// Package checkpoint implements the Checkpoint Dispatcher (L3, spec.md
// §4.4): for each transaction kind, an ordered, append-only sequence of
// rule objects keyed by activation height. instance(height) resolves the
// rule active at a given height on a given network, so a fork only ever
// adds an entry — it never edits one in place.
package checkpoint

import (
	"sort"

	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/models"
)

// Rule is the versioned behavior object a checkpoint entry constructs.
// Concrete rule types live in internal/social; this package only knows
// how to pick the right one for a given height.
type Rule interface {
	// Name identifies the rule variant for logging/diagnostics.
	Name() string
}

// Entry pins one rule's activation height per network (spec.md §4.4:
// "(mainHeight, testHeight, factory)").
type Entry struct {
	MainHeight int32
	TestHeight int32
	Factory    func() Rule
}

func (e Entry) heightFor(network chainparams.Network) int32 {
	if network == chainparams.Main {
		return e.MainHeight
	}
	return e.TestHeight
}

// Table is the changelog of rule entries for a single kind. Entries may
// be in any order: Instance does a linear scan for the best match
// (changelogs are short — a handful of forks per kind over a chain's
// lifetime) rather than requiring callers to pre-sort.
type Table []Entry

// Instance returns the rule active at height on network: the entry with
// the largest activation height <= height (spec.md §4.4).
func (t Table) Instance(network chainparams.Network, height int32) Rule {
	best := -1
	var bestHeight int32 = -1
	for i, e := range t {
		h := e.heightFor(network)
		if h <= height && h > bestHeight {
			bestHeight = h
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return t[best].Factory()
}

// Dispatcher holds one Table per transaction kind.
type Dispatcher struct {
	tables map[models.Kind]Table
}

// NewDispatcher builds an empty dispatcher; callers register per-kind
// tables with Register.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{tables: make(map[models.Kind]Table)}
}

// Register appends entries to kind's changelog. Forking a kind's rules
// at a new height means calling Register again with a new Entry, never
// mutating an existing one.
func (d *Dispatcher) Register(kind models.Kind, entries ...Entry) {
	d.tables[kind] = append(d.tables[kind], entries...)
}

// Instance resolves the active rule for kind at height on network.
func (d *Dispatcher) Instance(kind models.Kind, network chainparams.Network, height int32) Rule {
	t, ok := d.tables[kind]
	if !ok {
		return nil
	}
	return t.Instance(network, height)
}

// sortTables orders t by mainnet activation height. Nothing in the
// package calls it; Instance does not depend on entry order.
func sortTables(t Table) Table {
	sort.SliceStable(t, func(i, j int) bool { return t[i].MainHeight < t[j].MainHeight })
	return t
}
