package domain

import (
	"fmt"
	"time"
)

// CatalogEvent records one successful catalog write for the audit trail.
type CatalogEvent struct {
	Entity       string
	EntityID     int32
	Action       string
	Actor        string
	Path         string
	EdgeFailures int
	OccurredAt   time.Time
}

// Key identifies the entity an event belongs to; events sharing a key are
// processed in order.
func (e CatalogEvent) Key() string {
	return fmt.Sprintf("%s:%d", e.Entity, e.EntityID)
}
