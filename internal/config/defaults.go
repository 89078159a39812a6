package config

// Defaults mirrors defaults.yaml: the run-wide knobs spec.md §2/§5 fixes
// (tick rate, grid size) plus the ones a deployment may want to tune
// without a recompile (max tick count, default seed).
type Defaults struct {
	TickRate    int   `yaml:"tick_rate"`
	GridWidth   int   `yaml:"grid_width"`
	GridHeight  int   `yaml:"grid_height"`
	MaxTicks    int   `yaml:"max_ticks"`
	DefaultSeed int64 `yaml:"default_seed"`

	// Mana-on-damage-taken formula constants (spec.md §4.6):
	// min(cap, raw*pre + mitigated*post).
	ManaOnDamagePre  float64 `yaml:"mana_on_damage_pre"`
	ManaOnDamagePost float64 `yaml:"mana_on_damage_post"`
	ManaOnDamageCap  float64 `yaml:"mana_on_damage_cap"`
}
