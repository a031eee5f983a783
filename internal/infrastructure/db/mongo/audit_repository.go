package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/allegro-music/allegro/internal/core/domain"
)

const catalogEventsCollection = "catalog_events"

// AuditRepository appends catalog events to the catalog_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(catalogEventsCollection)}
}

// EnsureIndexes creates the lookup index by entity.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}},
		Options: options.Index().SetName("entity_lookup"),
	})
	if err != nil {
		return fmt.Errorf("create catalog_events index: %w", err)
	}
	return nil
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.CatalogEvent) error {
	doc := bson.M{
		"entity":        event.Entity,
		"entity_id":     event.EntityID,
		"action":        event.Action,
		"actor":         event.Actor,
		"edge_failures": event.EdgeFailures,
		"occurred_at":   event.OccurredAt.UTC(),
	}
	if event.Path != "" {
		doc["path"] = event.Path
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert catalog event: %w", err)
	}
	return nil
}
