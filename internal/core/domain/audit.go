package domain

import (
	"context"
	"time"
)

// AuditAction names something that happened to an account or a role.
type AuditAction string

const (
	AuditLogin         AuditAction = "login"
	AuditLoginFailed   AuditAction = "login_failed"
	AuditRegister      AuditAction = "register"
	AuditLogout        AuditAction = "logout"
	AuditTokenRefresh  AuditAction = "token_refresh"
	AuditRoleCreated   AuditAction = "role_created"
	AuditRoleUpdated   AuditAction = "role_updated"
	AuditRoleDeleted   AuditAction = "role_deleted"
	AuditRoleStatusSet AuditAction = "role_status_set"
)

// AuditEvent is one entry of the audit trail. Actor is the email of whoever
// triggered it (empty when anonymous); Subject is the email or role id acted on.
type AuditEvent struct {
	Action    AuditAction
	Actor     string
	Subject   string
	Timestamp time.Time
}

type actorKey struct{}

// WithActor stores the authenticated user's email for downstream audit records.
func WithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, actorKey{}, email)
}

// ActorFrom returns the email stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	email, _ := ctx.Value(actorKey{}).(string)
	return email
}
