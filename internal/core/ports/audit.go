package ports

import (
	"context"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService writes a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}
