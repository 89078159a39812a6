package unit

// refreshTimer models a "refresh, don't stack" duration per spec.md §3/§8:
// reapplication takes the larger of the old and new declared durations,
// but that duration is anchored to the tick the debuff was FIRST applied,
// not the tick of the refresh. This matches spec.md §8 scenario 4 (burn
// refresh): a 3s burn refreshed by a 4s burn one second in yields a total
// 4-second burn (3 more seconds remaining at the moment of refresh), not
// a fresh 4 seconds tacked onto the 1 already elapsed.
type refreshTimer struct {
	totalTicks   int
	elapsedTicks int
}

func (t *refreshTimer) active() bool { return t.totalTicks > t.elapsedTicks }

func (t *refreshTimer) remaining() int {
	if !t.active() {
		return 0
	}
	return t.totalTicks - t.elapsedTicks
}

// refresh extends the timer to start (or continue) running, applying the
// refresh-don't-stack rule.
func (t *refreshTimer) refresh(durationTicks int) {
	if !t.active() {
		t.totalTicks = durationTicks
		t.elapsedTicks = 0
		return
	}
	t.totalTicks = maxi(t.totalTicks, durationTicks)
}

// tick advances the timer by one; returns whether it is still active after
// advancing (false on the tick it expires and every tick after).
func (t *refreshTimer) tick() bool {
	if !t.active() {
		return false
	}
	t.elapsedTicks++
	return t.active()
}

func (t *refreshTimer) clear() { *t = refreshTimer{} }

// Debuffs holds the fixed set of crowd-control and resistance-shred
// records a unit can carry (spec.md §3 "Debuff records"). These are
// modelled as dedicated fields rather than a generic list because each
// has distinct refresh-on-reapply semantics.
type Debuffs struct {
	burnTimer    refreshTimer
	burnPerTick  float64
	woundTimer   refreshTimer
	woundPercent float64

	armorShredTimer   refreshTimer
	armorShredPercent float64
	armorShredFlat    float64

	mrShredTimer   refreshTimer
	mrShredPercent float64
	mrShredFlat    float64

	slowTimer   refreshTimer
	slowPercent float64

	StunTicks    int
	SilenceTicks int
	DisarmTicks  int

	tauntTimer refreshTimer
	tauntedBy  ID
}

func (d *Debuffs) IsStunned() bool  { return d.StunTicks > 0 }
func (d *Debuffs) IsSilenced() bool { return d.SilenceTicks > 0 }
func (d *Debuffs) IsDisarmed() bool { return d.DisarmTicks > 0 }
func (d *Debuffs) IsBurning() bool  { return d.burnTimer.active() }
func (d *Debuffs) IsWounded() bool  { return d.woundTimer.active() }
func (d *Debuffs) IsTaunted() bool  { return d.tauntTimer.active() }

// TauntedBy returns the id overriding this unit's target selection, and
// whether a taunt is currently active.
func (d *Debuffs) TauntedBy() (ID, bool) {
	if !d.tauntTimer.active() {
		return "", false
	}
	return d.tauntedBy, true
}

func (d *Debuffs) WoundPercent() float64 {
	if !d.woundTimer.active() {
		return 0
	}
	return d.woundPercent
}

func (d *Debuffs) ArmorShred() (percent, flat float64) {
	if !d.armorShredTimer.active() {
		return 0, 0
	}
	return d.armorShredPercent, d.armorShredFlat
}

func (d *Debuffs) MRShred() (percent, flat float64) {
	if !d.mrShredTimer.active() {
		return 0, 0
	}
	return d.mrShredPercent, d.mrShredFlat
}

func (d *Debuffs) SlowPercent() float64 {
	if !d.slowTimer.active() {
		return 0
	}
	return d.slowPercent
}

// ApplyBurn refreshes a true-damage-per-tick burn: value and duration both
// take the refresh-don't-stack rule (spec.md §4.10, §8 scenario 4).
func (d *Debuffs) ApplyBurn(perTickDamage float64, durationTicks int) {
	d.burnPerTick = maxf(d.burnPerTick, perTickDamage)
	d.burnTimer.refresh(durationTicks)
}

func (d *Debuffs) ApplyWound(percent float64, durationTicks int) {
	d.woundPercent = maxf(d.woundPercent, percent)
	d.woundTimer.refresh(durationTicks)
}

func (d *Debuffs) ApplyArmorShred(percent, flat float64, durationTicks int) {
	d.armorShredPercent = maxf(d.armorShredPercent, percent)
	d.armorShredFlat = maxf(d.armorShredFlat, flat)
	d.armorShredTimer.refresh(durationTicks)
}

func (d *Debuffs) ApplyMRShred(percent, flat float64, durationTicks int) {
	d.mrShredPercent = maxf(d.mrShredPercent, percent)
	d.mrShredFlat = maxf(d.mrShredFlat, flat)
	d.mrShredTimer.refresh(durationTicks)
}

func (d *Debuffs) ApplySlow(percent float64, durationTicks int) {
	d.slowPercent = maxf(d.slowPercent, percent)
	d.slowTimer.refresh(durationTicks)
}

func (d *Debuffs) ApplyStun(ticks int)    { d.StunTicks = maxi(d.StunTicks, ticks) }
func (d *Debuffs) ApplySilence(ticks int) { d.SilenceTicks = maxi(d.SilenceTicks, ticks) }
func (d *Debuffs) ApplyDisarm(ticks int)  { d.DisarmTicks = maxi(d.DisarmTicks, ticks) }

// ApplyTaunt overrides target selection to tauntedBy for durationTicks,
// per spec.md §4.10's "override target selection to caster for duration".
func (d *Debuffs) ApplyTaunt(tauntedBy ID, durationTicks int) {
	d.tauntedBy = tauntedBy
	d.tauntTimer.refresh(durationTicks)
}

// Cleanse removes every crowd-control debuff (not resistance shreds,
// which spec.md §4.10 lists as a distinct bucket from "crowd control").
func (d *Debuffs) Cleanse() {
	d.StunTicks = 0
	d.SilenceTicks = 0
	d.DisarmTicks = 0
	d.slowTimer.clear()
	d.slowPercent = 0
	d.tauntTimer.clear()
	d.tauntedBy = ""
}

// Tick advances every active timer by one and returns the true burn
// damage to apply this tick, if any.
func (d *Debuffs) Tick() (burnDamage float64) {
	if d.burnTimer.active() {
		burnDamage = d.burnPerTick
	}
	if !d.burnTimer.tick() {
		d.burnPerTick = 0
	}
	if !d.woundTimer.tick() {
		d.woundPercent = 0
	}
	if !d.armorShredTimer.tick() {
		d.armorShredPercent, d.armorShredFlat = 0, 0
	}
	if !d.mrShredTimer.tick() {
		d.mrShredPercent, d.mrShredFlat = 0, 0
	}
	if !d.slowTimer.tick() {
		d.slowPercent = 0
	}
	if !d.tauntTimer.tick() {
		d.tauntedBy = ""
	}
	if d.StunTicks > 0 {
		d.StunTicks--
	}
	if d.SilenceTicks > 0 {
		d.SilenceTicks--
	}
	if d.DisarmTicks > 0 {
		d.DisarmTicks--
	}
	return burnDamage
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
