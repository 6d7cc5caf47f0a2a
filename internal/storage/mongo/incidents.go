package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// earthRadiusRatio widens $geoNear's search so that, after distances are
// recomputed with domain.Haversine, no incident inside the radius is lost.
const earthRadiusRatio = 1.01

type IncidentRepo struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewIncidentRepo(col *mongo.Collection, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{col: col, logger: logger}
}

func (r *IncidentRepo) Insert(ctx context.Context, inc *domain.Incident) error {
	const op = "mongo.Incident.Insert"

	if _, err := r.col.InsertOne(ctx, toIncidentDoc(inc)); err != nil {
		r.logger.Error("insert failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *IncidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "mongo.Incident.Get"

	var doc incidentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	if err != nil {
		r.logger.Error("find failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return r.decode(ctx, op, doc)
}

func (r *IncidentRepo) List(ctx context.Context, page, limit int, status domain.IncidentStatus) ([]*domain.Incident, int64, error) {
	const op = "mongo.Incident.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("find failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer cur.Close(ctx)

	var docs []incidentDoc
	if err := cur.All(ctx, &docs); err != nil {
		r.logger.Error("cursor decode failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	out := make([]*domain.Incident, 0, len(docs))
	for _, d := range docs {
		inc, err := r.decode(ctx, op, d)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inc)
	}
	return out, total, nil
}

func (r *IncidentRepo) CompareAndSwapStatus(ctx context.Context, expected domain.IncidentStatus, next *domain.Incident) error {
	const op = "mongo.Incident.CompareAndSwapStatus"

	if next == nil || len(next.StatusHistory) == 0 {
		return fmt.Errorf("%s: %w", op, e.Validation("next state without history"))
	}
	doc := toIncidentDoc(next)
	entry := toStatusEntryDoc(next.StatusHistory[len(next.StatusHistory)-1])

	update := bson.M{
		"$set": bson.M{
			"status":       doc.Status,
			"assigned_to":  doc.AssignedTo,
			"duplicate_of": doc.DuplicateOf,
			"verified_at":  doc.VerifiedAt,
			"assigned_at":  doc.AssignedAt,
			"resolved_at":  doc.ResolvedAt,
			"closed_at":    doc.ClosedAt,
			"updated_at":   doc.UpdatedAt,
		},
		"$push": bson.M{"status_history": entry},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID, "status": string(expected)}, update)
	if err != nil {
		r.logger.Error("update failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	return r.missOr(ctx, op, next.ID, e.Conflict("status is no longer %s", expected))
}

// AddUpvote pushes the voter only while its key is absent from the set.
func (r *IncidentRepo) AddUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "mongo.Incident.AddUpvote"

	filter := bson.M{"_id": id.String(), "upvote_keys": bson.M{"$ne": voter.Key()}}
	update := bson.M{
		"$push": bson.M{"upvotes": toVoterDoc(voter), "upvote_keys": voter.Key()},
		"$inc":  bson.M{"upvote_count": 1},
		"$set":  bson.M{"updated_at": at.UTC()},
	}
	return r.findAndUpdate(ctx, op, id, filter, update, e.DuplicateVote("voter already upvoted this incident"))
}

func (r *IncidentRepo) RemoveUpvote(ctx context.Context, id uuid.UUID, voter domain.VoterIdentity, at time.Time) (*domain.Incident, error) {
	const op = "mongo.Incident.RemoveUpvote"

	filter := bson.M{"_id": id.String(), "upvote_keys": voter.Key()}
	update := bson.M{
		"$pull": bson.M{"upvotes": toVoterDoc(voter), "upvote_keys": voter.Key()},
		"$inc":  bson.M{"upvote_count": -1},
		"$set":  bson.M{"updated_at": at.UTC()},
	}
	return r.findAndUpdate(ctx, op, id, filter, update, e.NotFound("voter %s has not upvoted incident %s", voter.Key(), id))
}

func (r *IncidentRepo) UpdateScoreIf(ctx context.Context, id uuid.UUID, score, upvoteCount int) error {
	const op = "mongo.Incident.UpdateScoreIf"

	if score < domain.MinScore || score > domain.MaxScore {
		return fmt.Errorf("%s: %w", op, e.Validation("score %d out of range", score))
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id.String(), "upvote_count": upvoteCount},
		bson.M{"$set": bson.M{"verification_score": score}},
	)
	if err != nil {
		r.logger.Error("update failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	return r.missOr(ctx, op, id, e.Conflict("upvote count is no longer %d", upvoteCount))
}

// FindNearby narrows candidates with $geoNear and ranks them with the same
// haversine distance the other stores use.
func (r *IncidentRepo) FindNearby(ctx context.Context, q domain.NearbyQuery) ([]domain.NearbyIncident, error) {
	const op = "mongo.Incident.FindNearby"

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	terminal := make([]string, 0, 4)
	for _, s := range domain.TerminalStatuses() {
		terminal = append(terminal, string(s))
	}
	match := bson.M{"status": bson.M{"$nin": terminal}}
	if q.Type != "" {
		match["type"] = string(q.Type)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near":          geoJSONPoint{Type: "Point", Coordinates: []float64{q.Point.Lng, q.Point.Lat}},
			"key":           "location",
			"distanceField": "distance_m",
			"maxDistance":   q.RadiusMeters * earthRadiusRatio,
			"spherical":     true,
			"query":         match,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "distance_m", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: q.EffectiveLimit()}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("aggregate failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer cur.Close(ctx)

	var docs []incidentDoc
	if err := cur.All(ctx, &docs); err != nil {
		r.logger.Error("cursor decode failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	candidates := make([]*domain.Incident, 0, len(docs))
	for _, d := range docs {
		inc, err := r.decode(ctx, op, d)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, inc)
	}
	return domain.RankNearby(candidates, q), nil
}

func (r *IncidentRepo) findAndUpdate(ctx context.Context, op string, id uuid.UUID, filter, update bson.M, miss error) (*domain.Incident, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc incidentDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOr(ctx, op, id, miss)
	}
	if err != nil {
		r.logger.Error("find and update failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return r.decode(ctx, op, doc)
}

// missOr reports NotFound when the incident is gone and otherwise the error
// of the failed precondition.
func (r *IncidentRepo) missOr(ctx context.Context, op string, id uuid.UUID, precondition error) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id.String()}, options.Count().SetLimit(1))
	if err != nil {
		r.logger.Error("count failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, e.NotFound("incident %s", id))
	}
	return fmt.Errorf("%s: %w", op, precondition)
}

func (r *IncidentRepo) decode(ctx context.Context, op string, d incidentDoc) (*domain.Incident, error) {
	inc, err := d.toDomain()
	if err != nil {
		r.logger.Error("malformed incident document", slog.String("op", op), slog.String("id", d.ID), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return inc, nil
}
