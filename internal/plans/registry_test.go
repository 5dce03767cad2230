package plans

import (
	"testing"

	"inkwell/internal/domain/models"
)

func TestNewRegistryLoadsEmbeddedConfig(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	free := r.Entitlements(models.PlanFree)
	if free.ArticlesPerWeek != 1 {
		t.Errorf("free ArticlesPerWeek = %d, want 1", free.ArticlesPerWeek)
	}
	if free.ArticlesPerDay != 0 {
		t.Errorf("free ArticlesPerDay = %d, want 0 (uncapped, weekly limit dominates)", free.ArticlesPerDay)
	}
	if free.ToolsPerDay != 1 {
		t.Errorf("free ToolsPerDay = %d, want 1", free.ToolsPerDay)
	}

	pro := r.Entitlements(models.PlanPro)
	if pro.ArticlesPerDay != 15 {
		t.Errorf("pro ArticlesPerDay = %d, want 15", pro.ArticlesPerDay)
	}
	if pro.ArticlesPerWeek != 0 {
		t.Errorf("pro ArticlesPerWeek = %d, want 0 (uncapped)", pro.ArticlesPerWeek)
	}

	demo := r.Demo()
	if demo.Generations != 1 || demo.CooldownDays != 30 {
		t.Errorf("demo = %+v, want 1 generation with a 30 day cooldown", demo)
	}
}

func TestUnknownPlanFallsBackToFree(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	got := r.Entitlements(models.Plan("enterprise-beta"))
	want := r.Entitlements(models.PlanFree)
	if got != want {
		t.Errorf("Entitlements(unknown) = %+v, want free tier %+v", got, want)
	}
}
