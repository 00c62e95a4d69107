package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reconnectDelay = 2 * time.Second

// Watcher consumes one collection's change stream and publishes events to the
// hub. On stream errors it reconnects after a short delay; events occurring
// while disconnected are lost, which is acceptable for a best-effort feed.
type Watcher struct {
	col        *mongo.Collection
	collection string
	hub        *Hub
	log        zerolog.Logger
}

func NewWatcher(db *mongo.Database, collection string, hub *Hub, log zerolog.Logger) *Watcher {
	return &Watcher{
		col:        db.Collection(collection),
		collection: collection,
		hub:        hub,
		log:        log.With().Str("collection", collection).Logger(),
	}
}

// Run blocks until ctx is cancelled. Intended to be launched as a goroutine
// from main.
func (w *Watcher) Run(ctx context.Context) {
	for {
		if err := w.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error().Err(err).Msg("change stream failed, reconnecting")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// changeDoc is the subset of the change stream document the feed cares about.
type changeDoc struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID primitive.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.M `bson:"fullDocument"`
}

func (w *Watcher) consume(ctx context.Context) error {
	stream, err := w.col.Watch(ctx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	w.log.Info().Msg("change stream open")

	for stream.Next(ctx) {
		var change changeDoc
		if err := stream.Decode(&change); err != nil {
			w.log.Warn().Err(err).Msg("undecodable change event skipped")
			continue
		}

		ev, ok := w.toEvent(change)
		if !ok {
			continue
		}
		w.hub.Publish(ev)
	}
	return stream.Err()
}

func (w *Watcher) toEvent(change changeDoc) (Event, bool) {
	ev := Event{
		Collection: w.collection,
		ID:         change.DocumentKey.ID.Hex(),
	}

	switch change.OperationType {
	case "insert":
		ev.Kind = KindCreate
	case "update", "replace":
		ev.Kind = KindUpdate
	case "delete":
		ev.Kind = KindDelete
		return ev, true
	default:
		// drop / invalidate etc. are not interesting to clients
		return Event{}, false
	}

	ev.Document = make(map[string]any, len(change.FullDocument))
	for k, v := range change.FullDocument {
		if k == "_id" {
			continue
		}
		ev.Document[k] = v
	}
	return ev, true
}
