package config

// UnitsConfig mirrors units.yaml: the base-stat table every roster entry
// is built from, keyed by unit id. Struct shape follows the teacher's
// HeroesConfig/HeroDef pattern (a flat slice of named defs, loaded
// wholesale rather than merged incrementally).
type UnitsConfig struct {
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	AbilityID   string  `yaml:"ability_id"`
	MaxHP       float64 `yaml:"max_hp"`
	AD          float64 `yaml:"ad"`
	AP          float64 `yaml:"ap"`
	Armor       float64 `yaml:"armor"`
	MagicResist float64 `yaml:"magic_resist"`
	AttackSpeed float64 `yaml:"attack_speed"`
	CritChance  float64 `yaml:"crit_chance"`
	CritDamage  float64 `yaml:"crit_damage"`
	DodgeChance float64 `yaml:"dodge_chance"`
	AttackRange int     `yaml:"attack_range"`
	MaxMana     float64 `yaml:"max_mana"`
	ManaOnHit   float64 `yaml:"mana_on_hit"`
	Traits      []string `yaml:"traits"`
	Note        string   `yaml:"note"`
}
