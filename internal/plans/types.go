package plans

// Entitlements describes what a subscription plan may do per period.
// A zero limit means the period is not capped for that plan; the plan is
// instead capped by one of its other periods (the free plan has no daily
// article cap because its weekly cap of one dominates).
type Entitlements struct {
	DisplayName     string `yaml:"display_name" json:"display_name"`
	ArticlesPerDay  int    `yaml:"articles_per_day" json:"articles_per_day"`
	ArticlesPerWeek int    `yaml:"articles_per_week" json:"articles_per_week"`
	ToolsPerDay     int    `yaml:"tools_per_day" json:"tools_per_day"`
}

// Demo describes the unauthenticated trial allowance: one generation, then a
// cooldown before the next one is permitted.
type Demo struct {
	Generations  int `yaml:"generations" json:"generations"`
	CooldownDays int `yaml:"cooldown_days" json:"cooldown_days"`
}

// planFile is the on-disk shape of the embedded plan configuration.
type planFile struct {
	Demo  Demo                    `yaml:"demo"`
	Plans map[string]Entitlements `yaml:"plans"`
}
