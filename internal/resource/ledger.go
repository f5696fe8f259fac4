package resource

// Cost is a multi-resource price, keyed by type.
type Cost map[Type]int

// Ledger holds one Resource per type and applies weekly changes.
type Ledger struct {
	resources map[Type]*Resource
}

// NewLedger creates a ledger with every type present at its initial amount.
// Types missing from initial start at zero.
func NewLedger(initial map[Type]int) *Ledger {
	l := &Ledger{resources: make(map[Type]*Resource, len(AllTypes))}
	for _, t := range AllTypes {
		l.resources[t] = &Resource{Type: t, Amount: initial[t]}
	}
	return l
}

// RestoreLedger rebuilds a ledger from persisted records. Types missing
// from the records start at zero.
func RestoreLedger(records []*Resource) *Ledger {
	l := NewLedger(nil)
	for _, r := range records {
		if r != nil {
			l.resources[r.Type] = r
		}
	}
	return l
}

// Get returns the resource record for a type.
func (l *Ledger) Get(t Type) *Resource {
	return l.resources[t]
}

// Amount returns the current stock of a type.
func (l *Ledger) Amount(t Type) int {
	return l.resources[t].Amount
}

// Add adjusts a stock directly, clamping at zero. Used for manual
// adjustments and refunds outside the weekly cycle.
func (l *Ledger) Add(t Type, n int) {
	r := l.resources[t]
	r.Amount += n
	if r.Amount < 0 {
		r.Amount = 0
	}
}

// CanAfford reports whether every entry of cost is covered by current stock.
func (l *Ledger) CanAfford(cost Cost) bool {
	for t, n := range cost {
		if l.resources[t].Amount < n {
			return false
		}
	}
	return true
}

// Spend deducts cost atomically. Returns false and changes nothing when any
// entry is not covered.
func (l *Ledger) Spend(cost Cost) bool {
	if !l.CanAfford(cost) {
		return false
	}
	for t, n := range cost {
		l.resources[t].Amount -= n
	}
	return true
}

// Credit adds every entry of amounts to the stocks.
func (l *Ledger) Credit(amounts Cost) {
	for t, n := range amounts {
		l.Add(t, n)
	}
}

// ResetWeekly clears all weekly totals and source breakdowns. Called at the
// start of each ledger recomputation.
func (l *Ledger) ResetWeekly() {
	for _, r := range l.resources {
		r.WeeklyProduction = 0
		r.WeeklyConsumption = 0
		r.Sources = nil
	}
}

// AddProduction records a production entry for this week.
func (l *Ledger) AddProduction(t Type, origin SourceOrigin, name string, amount int) {
	if amount <= 0 {
		return
	}
	r := l.resources[t]
	r.WeeklyProduction += amount
	r.Sources = append(r.Sources, Source{Origin: origin, Name: name, Amount: amount})
}

// AddConsumption records a consumption entry for this week.
func (l *Ledger) AddConsumption(t Type, origin SourceOrigin, name string, amount int) {
	if amount <= 0 {
		return
	}
	r := l.resources[t]
	r.WeeklyConsumption += amount
	r.Sources = append(r.Sources, Source{Origin: origin, Name: name, Amount: -amount})
}

// ApplyWeeklyChange folds the weekly totals into the stocks. Amounts never
// drop below zero even when the net change would take them there.
func (l *Ledger) ApplyWeeklyChange() {
	for _, r := range l.resources {
		r.Amount += r.NetWeeklyChange()
		if r.Amount < 0 {
			r.Amount = 0
		}
	}
}

// Snapshot returns the current stock of every type.
func (l *Ledger) Snapshot() map[Type]int {
	out := make(map[Type]int, len(AllTypes))
	for _, t := range AllTypes {
		out[t] = l.resources[t].Amount
	}
	return out
}

// All returns the resource records in ledger order.
func (l *Ledger) All() []*Resource {
	out := make([]*Resource, 0, len(AllTypes))
	for _, t := range AllTypes {
		out = append(out, l.resources[t])
	}
	return out
}
