package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/enum"
)

// Operator is the authenticated identity a request acts as. It is produced
// by the auth collaborator and carried on the context; the engine itself
// never authenticates. Passing it explicitly (instead of a process-wide
// current-session singleton) lets independent sessions coexist, which the
// tests rely on.
type Operator struct {
	ID       uuid.UUID
	Username string
	Role     enum.Role
}

// IsAdmin reports whether the operator holds the admin role
func (o Operator) IsAdmin() bool {
	return o.Role == enum.RoleAdmin
}

type operatorContextKey struct{}

// WithOperator returns a context carrying the operator identity
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, op)
}

// OperatorFromContext extracts the operator identity from the context
func OperatorFromContext(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorContextKey{}).(Operator)
	return op, ok
}
