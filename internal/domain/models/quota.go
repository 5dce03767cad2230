package models

import "time"

// Plan identifies a subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// QuotaState is the locally persisted usage-counter record mirroring the
// backend's entitlements. It is advisory: the client predicts, the server
// corrects. A periodic profile resync overwrites the counters wholesale, and
// nothing here may block an action the backend would allow beyond a
// best-effort UX gate.
//
// Counters are monotonically non-decreasing within a period and reset to zero
// exactly once when the calendar day or ISO week rolls over. Rollover is
// detected lazily on the next read or write; there is no background timer.
type QuotaState struct {
	Plan                 Plan       `json:"plan"`
	TodayGenerations     int        `json:"todayGenerations"`
	WeekGenerations      int        `json:"weekGenerations"`
	MonthGenerations     int        `json:"monthGenerations"`
	ToolsToday           int        `json:"toolsToday"`
	DemoUsed             bool       `json:"demoUsed"`
	DemoUsedAt           *time.Time `json:"demoUsedAt,omitempty"`
	LastArticleGenerated *time.Time `json:"lastArticleGenerated,omitempty"`
	LastToolUsed         *time.Time `json:"lastToolUsed,omitempty"`
}

// DefaultQuotaState is the record created on a visitor's first interaction.
func DefaultQuotaState() QuotaState {
	return QuotaState{Plan: PlanFree}
}
