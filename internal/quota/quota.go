// Package quota implements the plan-aware usage gate for article generation
// and SEO tool use.
//
// Everything here is a pure function over an explicit QuotaState snapshot:
// callers pass the current record in and receive a new one out. The gate is
// advisory only - the generation backend is the authority on entitlement and
// periodically overwrites these counters via profile resync. Nothing here may
// block an action the backend would allow beyond a best-effort UX gate.
package quota

import (
	"fmt"
	"time"

	"inkwell/internal/domain/models"
	"inkwell/internal/plans"
)

// Decision is the answer to "is this action allowed". Reason is a user-facing
// message, present only on denial.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Gate answers quota questions using the plan entitlement registry.
type Gate struct {
	registry *plans.Registry
}

// NewGate creates a quota gate backed by the given plan registry.
func NewGate(registry *plans.Registry) *Gate {
	return &Gate{registry: registry}
}

// CanGenerateArticle decides whether one more article generation is allowed.
//
// Unauthenticated visitors get the demo allowance: one generation, then a
// cooldown before the next. Free-plan users are capped per ISO week, pro
// users per calendar day.
func (g *Gate) CanGenerateArticle(q models.QuotaState, authenticated bool, now time.Time) Decision {
	q = Rollover(q, now)

	if !authenticated {
		return g.demoDecision(q, now)
	}

	ent := g.registry.Entitlements(q.Plan)
	if ent.ArticlesPerDay > 0 && q.TodayGenerations >= ent.ArticlesPerDay {
		return deny(fmt.Sprintf("You've reached your daily limit of %d articles. Your quota resets tomorrow.",
			ent.ArticlesPerDay))
	}
	if ent.ArticlesPerWeek > 0 && q.WeekGenerations >= ent.ArticlesPerWeek {
		return deny(fmt.Sprintf("The %s plan includes %d article per week. Upgrade to Pro to generate more.",
			ent.DisplayName, ent.ArticlesPerWeek))
	}
	return allow()
}

// CanUseTool decides whether one more SEO tool run is allowed. Tools are
// never available to unauthenticated visitors.
func (g *Gate) CanUseTool(q models.QuotaState, authenticated bool, now time.Time) Decision {
	if !authenticated {
		return deny("Sign in to use SEO tools.")
	}

	q = Rollover(q, now)
	ent := g.registry.Entitlements(q.Plan)
	if ent.ToolsPerDay > 0 && q.ToolsToday >= ent.ToolsPerDay {
		return deny(fmt.Sprintf("You've reached your daily limit of %d tool uses. Your quota resets tomorrow.",
			ent.ToolsPerDay))
	}
	return allow()
}

func (g *Gate) demoDecision(q models.QuotaState, now time.Time) Decision {
	if !q.DemoUsed || q.DemoUsedAt == nil {
		return allow()
	}

	demo := g.registry.Demo()
	elapsed := int(now.Sub(*q.DemoUsedAt).Hours() / 24)
	if elapsed >= demo.CooldownDays {
		return allow()
	}
	remaining := demo.CooldownDays - elapsed
	return deny(fmt.Sprintf("You've already used your free demo. Try again in %d days, or sign up for a free account.",
		remaining))
}

// RecordArticleGeneration returns a new state with the generation counters
// advanced by one, applying any pending period rollover first.
func RecordArticleGeneration(q models.QuotaState, now time.Time) models.QuotaState {
	q = Rollover(q, now)
	q.TodayGenerations++
	q.WeekGenerations++
	q.MonthGenerations++
	t := now
	q.LastArticleGenerated = &t
	return q
}

// RecordToolUsage returns a new state with the tool counter advanced by one,
// applying any pending period rollover first.
func RecordToolUsage(q models.QuotaState, now time.Time) models.QuotaState {
	q = Rollover(q, now)
	q.ToolsToday++
	t := now
	q.LastToolUsed = &t
	return q
}

// RecordDemoUse marks the unauthenticated trial generation as consumed.
func RecordDemoUse(q models.QuotaState, now time.Time) models.QuotaState {
	t := now
	q.DemoUsed = true
	q.DemoUsedAt = &t
	return q
}

// Rollover resets counters whose period has ended since the last recorded
// activity. Detection is lazy - it happens on the next read or write, keyed
// off the last-activity timestamps; there is no background timer.
func Rollover(q models.QuotaState, now time.Time) models.QuotaState {
	if q.LastArticleGenerated != nil {
		last := *q.LastArticleGenerated
		if !sameDay(last, now) {
			q.TodayGenerations = 0
		}
		if !sameISOWeek(last, now) {
			q.WeekGenerations = 0
		}
		if !sameMonth(last, now) {
			q.MonthGenerations = 0
		}
	}
	if q.LastToolUsed != nil && !sameDay(*q.LastToolUsed, now) {
		q.ToolsToday = 0
	}
	return q
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
