package plans

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"inkwell/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the plan entitlement table loaded from the embedded YAML
// file. Limits live in configuration rather than code so that plan changes
// ship without touching the decision logic.
type Registry struct {
	demo  Demo
	plans map[models.Plan]Entitlements
	mu    sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded plan file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/plans.yaml")
	if err != nil {
		return nil, fmt.Errorf("read plans config: %w", err)
	}

	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal plans config: %w", err)
	}

	r := &Registry{
		demo:  file.Demo,
		plans: make(map[models.Plan]Entitlements, len(file.Plans)),
	}
	for name, ent := range file.Plans {
		r.plans[models.Plan(name)] = ent
	}

	for _, required := range []models.Plan{models.PlanFree, models.PlanPro} {
		if _, ok := r.plans[required]; !ok {
			return nil, fmt.Errorf("plans config missing %q plan", required)
		}
	}

	return r, nil
}

// Entitlements returns the limits for a plan. Unknown plans fall back to the
// free tier so a stale or garbled plan name from the backend degrades to the
// most restrictive gate instead of failing the request.
func (r *Registry) Entitlements(plan models.Plan) Entitlements {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ent, ok := r.plans[plan]; ok {
		return ent
	}
	return r.plans[models.PlanFree]
}

// Demo returns the unauthenticated trial allowance.
func (r *Registry) Demo() Demo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.demo
}
