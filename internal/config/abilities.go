package config

// AbilitiesConfig mirrors abilities.yaml. EffectDef flattens
// internal/effects.Effect's fields for YAML, following the teacher's
// ElementsConfig.Mods approach of nesting a few named sub-shapes (Dot,
// Chain, Debuff) rather than one fully generic blob — here kept as a
// single flat struct since effects.Kind already disambiguates which
// fields are meaningful.
type AbilitiesConfig struct {
	Abilities []AbilityDef `yaml:"abilities"`
}

type AbilityDef struct {
	ID               string  `yaml:"id"`
	ManaCost         float64 `yaml:"mana_cost"`
	CastStartTicks   int     `yaml:"cast_start_ticks"`
	EffectPointTicks int     `yaml:"effect_point_ticks"`
	CastEndTicks     int     `yaml:"cast_end_ticks"`

	TargetPolicy string `yaml:"target_policy"`
	TargetRange  int    `yaml:"target_range"`
	TargetStat   string `yaml:"target_stat"`

	Delivery string  `yaml:"delivery"`
	AoE      AoEDef  `yaml:"aoe"`
	Homing   bool    `yaml:"homing"`
	CanMiss  bool    `yaml:"can_miss"`
	Speed    float64 `yaml:"projectile_speed"`

	// Swarm/spread projectile delivery (spec.md §4.9/§4.10): spawns
	// ProjectileCount shots fanned evenly across SwarmSpreadAngleDeg
	// degrees around the target line, each additionally jittered by up to
	// SwarmJitterDeg.
	ProjectileCount     int     `yaml:"projectile_count"`
	SwarmSpreadAngleDeg float64 `yaml:"swarm_spread_angle_deg"`
	SwarmJitterDeg      float64 `yaml:"swarm_jitter_deg"`

	Effects []EffectDef `yaml:"effects"`
	Note    string      `yaml:"note"`
}

type AoEDef struct {
	Shape     string  `yaml:"shape"`
	Radius    int     `yaml:"radius"`
	HalfAngle float64 `yaml:"half_angle"`
	Width     int     `yaml:"width"`
	Affinity  string  `yaml:"affinity"`
}

type EffectDef struct {
	Kind          string      `yaml:"kind"`
	Amount        float64     `yaml:"amount"`
	Percent       float64     `yaml:"percent"`
	Flat          float64     `yaml:"flat"`
	DurationTicks int         `yaml:"duration_ticks"`
	IntervalTicks int         `yaml:"interval_ticks"`
	Radius        int         `yaml:"radius"`
	HalfAngle     float64     `yaml:"half_angle"`
	Width         int         `yaml:"width"`
	MaxTargets    int         `yaml:"max_targets"`
	StatKey       string      `yaml:"stat_key"`
	DamageType    string      `yaml:"damage_type"`
	StackPolicy   string      `yaml:"stack_policy"`
	GroupKey      string      `yaml:"group_key"`
	StatRatioOf   string      `yaml:"stat_ratio_of"`
	ScalePerPoint float64     `yaml:"scale_per_point"`
	Children      []EffectDef `yaml:"children"`
}
