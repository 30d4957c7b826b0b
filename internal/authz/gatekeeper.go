package authz

import (
	"slices"

	"event-rental/internal/entities"
	apperrors "event-rental/pkg/errors"
)

// Gatekeeper evaluates the static access table.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can reports whether role may use method on resource.
func (g *Gatekeeper) Can(role entities.Role, method, resource string) bool {
	r, ok := policy[resource]
	if !ok || !role.Valid() {
		return false
	}

	switch verbGroup(method) {
	case Read:
		return slices.Contains(r.read, role)
	case Write:
		return slices.Contains(r.write, role)
	}
	return false
}

// Authorize returns ErrUnauthorized without an active principal and
// ErrForbidden when the table denies the call.
func (g *Gatekeeper) Authorize(p *Principal, method, resource string) error {
	if p == nil || !p.IsActive {
		return apperrors.ErrUnauthorized
	}
	if !g.Can(p.Role, method, resource) {
		return apperrors.ErrForbidden
	}
	return nil
}
