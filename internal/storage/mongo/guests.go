package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GuestRepo struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewGuestRepo(col *mongo.Collection, logger *slog.Logger) *GuestRepo {
	return &GuestRepo{col: col, logger: logger}
}

func (r *GuestRepo) CreateGuest(ctx context.Context, g *domain.Guest) error {
	const op = "mongo.Guest.Create"

	if g == nil || g.ID == "" || g.MaxActions <= 0 || g.ActionCount < 0 || g.ActionCount > g.MaxActions {
		return fmt.Errorf("%s: %w", op, e.Validation("malformed guest"))
	}
	if _, err := r.col.InsertOne(ctx, toGuestDoc(g)); err != nil {
		r.logger.Error("insert failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *GuestRepo) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "mongo.Guest.Get"

	var doc guestDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	if err != nil {
		r.logger.Error("find failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return doc.toDomain(), nil
}

func (r *GuestRepo) IncrementActionIf(ctx context.Context, id string, now time.Time) (*domain.Guest, error) {
	const op = "mongo.Guest.IncrementActionIf"

	now = now.UTC()
	filter := bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": now},
		"$expr":      bson.M{"$lt": bson.A{"$action_count", "$max_actions"}},
	}
	update := bson.M{
		"$inc": bson.M{"action_count": 1},
		"$set": bson.M{"last_active_at": now},
	}

	var doc guestDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		r.logger.Error("find and update failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	cur, err := r.GetGuest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cur.Expired(now) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest session %s expired", id))
	}
	return nil, fmt.Errorf("%s: %w", op, e.LimitExceeded("guest action quota exhausted"))
}

func (r *GuestRepo) GrantActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	const op = "mongo.Guest.GrantActions"

	if n <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.Validation("granted actions must be positive"))
	}

	var doc guestDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"max_actions": n}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	if err != nil {
		r.logger.Error("find and update failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return doc.toDomain(), nil
}
