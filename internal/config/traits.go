package config

// TraitsConfig mirrors traits.yaml: the breakpoint-activated team-wide
// bonuses spec.md's original_source supplement adds (trait_manager
// bookkeeping referenced in SPEC_FULL.md §3's domain-stack expansion).
type TraitsConfig struct {
	Traits []TraitDef `yaml:"traits"`
}

type TraitDef struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Breakpoints []TraitBreakpoint  `yaml:"breakpoints"`
	Note        string             `yaml:"note"`
}

// TraitBreakpoint is one count threshold and the flat/percent bonus it
// grants every unit carrying the trait while active.
type TraitBreakpoint struct {
	Count   int                `yaml:"count"`
	Flat    map[string]float64 `yaml:"flat"`
	Percent map[string]float64 `yaml:"percent"`
}
