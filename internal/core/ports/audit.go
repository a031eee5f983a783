package ports

import (
	"context"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// AuditRepository persists catalog events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.CatalogEvent) error
}

// AuditPublisher hands events off without blocking the caller.
type AuditPublisher interface {
	Publish(event domain.CatalogEvent)
}
