package authz

import (
	"context"

	"event-rental/internal/entities"
	"event-rental/pkg/contextkeys"
)

// Principal is the authenticated employee behind a request.
type Principal struct {
	EmployeeID uint64        `json:"employee_id"`
	Username   string        `json:"username"`
	Role       entities.Role `json:"role"`
	IsActive   bool          `json:"is_active"`
}

func PrincipalFromEmployee(e *entities.Employee) *Principal {
	return &Principal{
		EmployeeID: e.ID,
		Username:   e.Username,
		Role:       e.Role,
		IsActive:   e.IsActive,
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextkeys.PrincipalKey, p)
}

// PrincipalFrom returns nil when the request carries no principal.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextkeys.PrincipalKey).(*Principal)
	return p
}
