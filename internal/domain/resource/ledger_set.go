package resource

import "sort"

// Cost is an activation cost charged against one resource kind
type Cost struct {
	Resource string
	Amount   float64
}

// LedgerSet holds one ledger per resource kind present on a ship.
// Iteration is always in sorted kind order.
type LedgerSet struct {
	ledgers map[string]*Ledger
	kinds   []string
}

// NewLedgerSet builds a set from ledgers; a later ledger with the same kind replaces an earlier one
func NewLedgerSet(ledgers ...*Ledger) *LedgerSet {
	s := &LedgerSet{ledgers: make(map[string]*Ledger, len(ledgers))}
	for _, l := range ledgers {
		s.ledgers[l.kind] = l
	}
	s.kinds = make([]string, 0, len(s.ledgers))
	for k := range s.ledgers {
		s.kinds = append(s.kinds, k)
	}
	sort.Strings(s.kinds)
	return s
}

// Get returns the ledger for kind
func (s *LedgerSet) Get(kind string) (*Ledger, bool) {
	l, ok := s.ledgers[kind]
	return l, ok
}

// Has reports whether the ship tracks kind at all
func (s *LedgerSet) Has(kind string) bool {
	_, ok := s.ledgers[kind]
	return ok
}

// Kinds returns the tracked resource kinds, sorted
func (s *LedgerSet) Kinds() []string {
	return append([]string(nil), s.kinds...)
}

// Ledgers returns the ledgers in kind order
func (s *LedgerSet) Ledgers() []*Ledger {
	out := make([]*Ledger, 0, len(s.kinds))
	for _, k := range s.kinds {
		out = append(out, s.ledgers[k])
	}
	return out
}

func (s *LedgerSet) Len() int {
	return len(s.kinds)
}

// Advance moves every ledger forward by dt seconds
func (s *LedgerSet) Advance(dt float64) {
	for _, k := range s.kinds {
		s.ledgers[k].Advance(dt)
	}
}

// CanAfford reports whether every cost could be paid right now
func (s *LedgerSet) CanAfford(costs []Cost) bool {
	needed := totalByKind(costs)
	for kind, amount := range needed {
		l, ok := s.ledgers[kind]
		if !ok {
			if amount > 0 {
				return false
			}
			continue
		}
		if !l.CanConsume(amount) {
			return false
		}
	}
	return true
}

// TryConsumeAll pays all costs or none of them
func (s *LedgerSet) TryConsumeAll(costs []Cost) bool {
	if !s.CanAfford(costs) {
		return false
	}
	needed := totalByKind(costs)
	for _, kind := range sortedKeys(needed) {
		if l, ok := s.ledgers[kind]; ok {
			l.TryConsume(needed[kind])
		}
	}
	return true
}

// Fill tops up every ledger
func (s *LedgerSet) Fill() {
	for _, l := range s.ledgers {
		l.Fill()
	}
}

// Clone returns an independent copy, e.g. for a battle run that must not touch the design
func (s *LedgerSet) Clone() *LedgerSet {
	ledgers := make([]*Ledger, 0, len(s.ledgers))
	for _, k := range s.kinds {
		ledgers = append(ledgers, s.ledgers[k].clone())
	}
	return NewLedgerSet(ledgers...)
}

func totalByKind(costs []Cost) map[string]float64 {
	out := make(map[string]float64, len(costs))
	for _, c := range costs {
		out[c.Resource] += c.Amount
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
