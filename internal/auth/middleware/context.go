package auth

import (
	"context"

	"github.com/mind-engage/mindengage-diagnostic/internal/rbac"
)

type ctxKey string

const ctxKeySub ctxKey = "sub"

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeySub).(string)
	return s
}

// Principal is the authenticated caller.
type Principal struct {
	Subject string
	Role    string
}

// PrincipalFromContext reads what JWTMiddleware stored.
func PrincipalFromContext(ctx context.Context) Principal {
	return Principal{Subject: SubjectFromContext(ctx), Role: rbac.RoleFromContext(ctx)}
}

// SeesAll reports whether the caller may read every respondent's assessments.
func (p Principal) SeesAll() bool {
	return rbac.Allowed(p.Role, rbac.PermAssessmentViewAll)
}
