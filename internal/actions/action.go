package actions

import (
	"context"
	"fmt"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
)

// AppAction is one invokable business transition. IsAvailable answers from
// the parent status alone; aggregate preconditions over child orders are
// re-checked inside Run. An action runs for exactly one shipping; bulk
// invocations loop at the service layer over a shared BatchContext.
//
// Expected domain failures (wrong state, missing data, rejected remote
// call) come back as an AppResult with IsError set; errors are reserved for
// infrastructure trouble and handled by the caller.
type AppAction interface {
	Name() string
	Roles() []string
	IsAvailable(status domain.ShippingStatus) bool
	Run(ctx context.Context, batch *domain.BatchContext, user domain.User, shipping *domain.Shipping) domain.AppResult
}

// Registry resolves action names arriving from the generic invokeAction
// endpoint. Built once at startup, read-only afterwards.
type Registry struct {
	actions map[string]AppAction
	ordered []AppAction
}

// NewRegistry builds a registry from the given actions. Duplicate names are
// a wiring mistake and panic at startup.
func NewRegistry(actions ...AppAction) *Registry {
	r := &Registry{actions: make(map[string]AppAction, len(actions))}
	for _, a := range actions {
		if _, exists := r.actions[a.Name()]; exists {
			panic(fmt.Sprintf("duplicate action registration: %s", a.Name()))
		}
		r.actions[a.Name()] = a
		r.ordered = append(r.ordered, a)
	}
	return r
}

// Get resolves an action by name
func (r *Registry) Get(name string) (AppAction, error) {
	a, ok := r.actions[name]
	if !ok {
		return nil, domain.ErrActionNotFound
	}
	return a, nil
}

// AvailableFor lists the actions the user may invoke on a shipping in the
// given status, in registration order.
func (r *Registry) AvailableFor(status domain.ShippingStatus, user domain.User) []AppAction {
	var out []AppAction
	for _, a := range r.ordered {
		if !a.IsAvailable(status) {
			continue
		}
		if !user.HasAnyRole(a.Roles()) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// All returns every registered action in registration order
func (r *Registry) All() []AppAction {
	return r.ordered
}

// unavailableResult is the hardened-precondition failure shared by actions
// whose state was changed between the availability check and the run.
func unavailableResult(name string) domain.AppResult {
	return domain.Errorf("actionUnavailableForCurrentStatus." + name)
}
