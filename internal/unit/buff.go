package unit

// StackPolicy controls what happens when a buff with the same Id is
// applied while one is already active (spec.md §3 "Buff").
type StackPolicy int

const (
	StackNone      StackPolicy = iota // new application is ignored if one is active
	StackRefresh                      // duration resets, deltas replaced
	StackIntensify                    // deltas added, duration refreshed
	StackMulti                        // a wholly independent instance is kept
)

// Buff is a timed bundle of flat/percent stat deltas.
type Buff struct {
	ID            string
	Flat          map[StatKey]float64
	Percent       map[StatKey]float64
	RemainingTick int
	Policy        StackPolicy
	DecayToZero   bool // decaying_buff: linear decay of Flat/Percent to 0 over the duration
	initialFlat   map[StatKey]float64
	initialPct    map[StatKey]float64
	fullDuration  int
}

// buffList holds the live buff list for a Unit.
type buffList struct {
	items []*Buff
}

// Apply inserts or merges b per its stacking policy, and (re)applies its
// deltas into sb under the buff's own id. Multi-stacking buffs get a
// synthesized per-instance id so each coexists independently.
func (bl *buffList) Apply(sb *StatBlock, b *Buff) {
	b.fullDuration = b.RemainingTick
	if b.initialFlat == nil {
		b.initialFlat = cloneStatMap(b.Flat)
	}
	if b.initialPct == nil {
		b.initialPct = cloneStatMap(b.Percent)
	}

	if b.Policy != StackMulti {
		for i, existing := range bl.items {
			if existing.ID != b.ID {
				continue
			}
			switch b.Policy {
			case StackNone:
				return
			case StackRefresh:
				sb.RemoveSource(existing.ID)
				bl.items[i] = b
				applyBuffStats(sb, b)
				return
			case StackIntensify:
				merged := &Buff{
					ID:            b.ID,
					Flat:          addStatMaps(existing.Flat, b.Flat),
					Percent:       addStatMaps(existing.Percent, b.Percent),
					RemainingTick: maxi(existing.RemainingTick, b.RemainingTick),
					Policy:        StackIntensify,
				}
				sb.RemoveSource(existing.ID)
				bl.items[i] = merged
				applyBuffStats(sb, merged)
				return
			}
		}
	} else {
		b.ID = b.ID + "#" + uniqueSuffix()
	}
	bl.items = append(bl.items, b)
	applyBuffStats(sb, b)
}

// Tick decrements every buff's timer, applying decaying_buff linear decay,
// and removes (unapplying from sb) any that expire. Returns the ids of
// expired buffs so the engine can log BUFF_EXPIRE events.
func (bl *buffList) Tick(sb *StatBlock) []string {
	var expired []string
	kept := bl.items[:0]
	for _, b := range bl.items {
		b.RemainingTick--
		if b.RemainingTick <= 0 {
			sb.RemoveSource(b.ID)
			expired = append(expired, b.ID)
			continue
		}
		if b.DecayToZero && b.fullDuration > 0 {
			frac := float64(b.RemainingTick) / float64(b.fullDuration)
			for k, v := range b.initialFlat {
				sb.AddFlat(k, b.ID, v*frac)
			}
			for k, v := range b.initialPct {
				sb.AddPercent(k, b.ID, v*frac)
			}
		}
		kept = append(kept, b)
	}
	bl.items = kept
	return expired
}

func (bl *buffList) Remove(sb *StatBlock, id string) bool {
	for i, b := range bl.items {
		if b.ID == id {
			sb.RemoveSource(id)
			bl.items = append(bl.items[:i], bl.items[i+1:]...)
			return true
		}
	}
	return false
}

func (bl *buffList) List() []*Buff { return bl.items }

func applyBuffStats(sb *StatBlock, b *Buff) {
	for k, v := range b.Flat {
		sb.AddFlat(k, b.ID, v)
	}
	for k, v := range b.Percent {
		sb.AddPercent(k, b.ID, v)
	}
}

func cloneStatMap(m map[StatKey]float64) map[StatKey]float64 {
	out := make(map[StatKey]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func addStatMaps(a, b map[StatKey]float64) map[StatKey]float64 {
	out := cloneStatMap(a)
	for k, v := range b {
		out[k] += v
	}
	return out
}

var uniqueCounter uint64

// uniqueSuffix generates a disambiguating suffix for multi-stack buff ids.
// Deliberately NOT randomness-derived (the engine must stay free of any
// randomness outside internal/rng) — a monotonic counter is enough since
// it is only used for map-key uniqueness, never for any probabilistic
// outcome.
func uniqueSuffix() string {
	uniqueCounter++
	return itoa(uniqueCounter)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
