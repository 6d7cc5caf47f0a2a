// Package mongo implements the atomic store ports on MongoDB. Conditional
// writes are single-document filtered updates, which MongoDB applies
// atomically.
package mongo

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"incidentTrust/internal/config"
	"incidentTrust/pkg/e"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	incidentsCollection = "incidents"
	guestsCollection    = "guests"
)

type Mongo struct {
	Client    *mongo.Client
	Incidents *IncidentRepo
	Guests    *GuestRepo
}

func NewMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Mongo, error) {
	start := time.Now()
	logger.Info("Connecting to MongoDB",
		slog.String("uri", redactURI(cfg.Mongo.URI)),
		slog.String("database", cfg.Mongo.Database),
	)

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.mongo.NewMongo.Connect", err)
	}
	if err := client.Ping(dctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", slog.String("error", err.Error()))
		_ = client.Disconnect(context.Background())
		return nil, e.Wrap("storage.mongo.NewMongo.Ping", err)
	}

	m := New(client.Database(cfg.Mongo.Database), logger)
	m.Client = client
	if err := EnsureIndexes(dctx, client.Database(cfg.Mongo.Database)); err != nil {
		logger.Warn("mongo index creation warnings", slog.String("error", err.Error()))
	}

	logger.Info("Connected to MongoDB successfully", slog.Duration("took", time.Since(start).Round(time.Millisecond)))
	return m, nil
}

// New builds the repositories over an existing database handle.
func New(db *mongo.Database, logger *slog.Logger) *Mongo {
	return &Mongo{
		Client:    db.Client(),
		Incidents: NewIncidentRepo(db.Collection(incidentsCollection), logger),
		Guests:    NewGuestRepo(db.Collection(guestsCollection), logger),
	}
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the geo, listing and guest expiry indexes. All
// failures are collected so one bad index does not hide the others.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []string

	incidents := db.Collection(incidentsCollection)
	if _, err := incidents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	}); err != nil {
		errs = append(errs, "location: "+err.Error())
	}
	if _, err := incidents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		errs = append(errs, "status,created_at: "+err.Error())
	}

	// expired guest sessions are purged by the server
	guests := db.Collection(guestsCollection)
	if _, err := guests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}); err != nil {
		errs = append(errs, "expires_at: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func redactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
