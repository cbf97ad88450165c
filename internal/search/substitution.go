package search

import (
	"fmt"
	"math/big"
	"sort"
)

// Substitution maps a candidate's digits before it is tested.
// Apply must return a value >= its argument and must not modify it.
type Substitution interface {
	Name() string
	Apply(n *big.Int) *big.Int
}

// digitTable rewrites each decimal digit through a fixed table.
type digitTable struct {
	name  string
	table [10]byte
}

func (d *digitTable) Name() string { return d.name }

func (d *digitTable) Apply(n *big.Int) *big.Int {
	text := []byte(n.Text(10))
	changed := false
	for i, c := range text {
		if r := d.table[c-'0']; r != c {
			text[i] = r
			changed = true
		}
	}
	if !changed {
		return n
	}
	out, _ := new(big.Int).SetString(string(text), 10)
	return out
}

// newDigitTable builds a table policy. Unlisted digits map to themselves.
// Every replacement must be >= the digit it replaces.
func newDigitTable(name string, replace map[byte]byte) *digitTable {
	d := &digitTable{name: name}
	for i := range d.table {
		d.table[i] = '0' + byte(i)
	}
	for from, to := range replace {
		if to < from {
			panic(fmt.Sprintf("search: substitution %s maps %c to smaller %c", name, from, to))
		}
		d.table[from-'0'] = to
	}
	return d
}

var (
	// ZeroToOne replaces every 0 with 1. Numbers containing a 0 reduce to 0
	// in one step, so they can never set a record.
	ZeroToOne Substitution = newDigitTable("zero-to-one", map[byte]byte{'0': '1'})

	// SkipUnlikelyDigits biases candidates toward digits that tend to yield
	// high persistence. It is an unproven heuristic and may skip the true record.
	SkipUnlikelyDigits Substitution = newDigitTable("skip-unlikely-digits", map[byte]byte{
		'0': '7',
		'1': '2',
		'3': '7',
		'4': '7',
		'5': '7',
		'6': '7',
		'8': '9',
	})

	// Identity tests every candidate unchanged.
	Identity Substitution = newDigitTable("identity", nil)
)

var substitutions = map[string]Substitution{
	ZeroToOne.Name():          ZeroToOne,
	SkipUnlikelyDigits.Name(): SkipUnlikelyDigits,
	Identity.Name():           Identity,
}

// SubstitutionByName returns a registered substitution policy.
func SubstitutionByName(name string) (Substitution, error) {
	s, ok := substitutions[name]
	if !ok {
		return nil, fmt.Errorf("unknown substitution %q (known: %v)", name, SubstitutionNames())
	}
	return s, nil
}

// SubstitutionNames lists registered substitution policies in sorted order.
func SubstitutionNames() []string {
	names := make([]string, 0, len(substitutions))
	for name := range substitutions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
