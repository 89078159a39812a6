package unit

// shieldEntry is one independently-expiring shield instance. spec.md §3
// allows multiple shields to coexist on a unit ("a list of active
// shields, each with its own remaining duration"); they are consumed
// oldest first (insertion order), whatever their remaining durations.
type shieldEntry struct {
	id       string
	amount   float64
	duration int
}

type shieldPool struct {
	entries []shieldEntry
}

// Add creates or replaces (by id) a shield instance.
func (sp *shieldPool) Add(id string, amount float64, durationTicks int) {
	for i, e := range sp.entries {
		if e.id == id {
			sp.entries[i] = shieldEntry{id: id, amount: amount, duration: durationTicks}
			return
		}
	}
	sp.entries = append(sp.entries, shieldEntry{id: id, amount: amount, duration: durationTicks})
}

// Total reports the sum of all active shield amounts.
func (sp *shieldPool) Total() float64 {
	var total float64
	for _, e := range sp.entries {
		total += e.amount
	}
	return total
}

// Absorb consumes dmg against shields oldest-first, returning the
// leftover that spills through to HP.
func (sp *shieldPool) Absorb(dmg float64) float64 {
	kept := sp.entries[:0]
	for _, e := range sp.entries {
		if dmg <= 0 {
			kept = append(kept, e)
			continue
		}
		if e.amount <= dmg {
			dmg -= e.amount
			continue // fully consumed, dropped
		}
		e.amount -= dmg
		dmg = 0
		kept = append(kept, e)
	}
	sp.entries = kept
	return dmg
}

// Tick advances every shield's duration, dropping any that expire.
func (sp *shieldPool) Tick() {
	kept := sp.entries[:0]
	for _, e := range sp.entries {
		e.duration--
		if e.duration > 0 {
			kept = append(kept, e)
		}
	}
	sp.entries = kept
}
