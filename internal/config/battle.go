package config

// BattleConfig describes one matchup to simulate: each side's roster,
// placed on starting hexes, at a chosen star level (spec.md §2 "two
// eight-hex-wide teams" / §4.1 board layout).
type BattleConfig struct {
	TeamA []Placement `yaml:"team_a"`
	TeamB []Placement `yaml:"team_b"`
}

type Placement struct {
	UnitID string `yaml:"unit_id"`
	Star   int    `yaml:"star"`
	Q      int    `yaml:"q"`
	R      int    `yaml:"r"`
	Items  []string `yaml:"items"`
}

// LoadBattle reads a single battle.yaml-style file at path.
func LoadBattle(path string) (*BattleConfig, error) {
	var bc BattleConfig
	if err := loadYAML(path, &bc); err != nil {
		return nil, err
	}
	return &bc, nil
}
