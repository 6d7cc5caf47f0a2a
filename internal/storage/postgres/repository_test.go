//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := Migrate(ctx, testPool, logger); err != nil {
		fmt.Println("Migrate:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE incident_upvotes, incidents, guests`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

var baseTime = time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)

func seedIncident(t *testing.T, repo *IncidentRepo, lng, lat float64, typ domain.IncidentType, created time.Time) *domain.Incident {
	t.Helper()
	inc, err := domain.NewIncident(domain.CreateIncidentRequest{
		Title: "Water main burst",
		Type:  typ,
		Lng:   lng,
		Lat:   lat,
	}, domain.RegisteredVoter("user-1"), created)
	if err != nil {
		t.Fatalf("NewIncident: %v", err)
	}
	if err := repo.Insert(context.Background(), inc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return inc
}

func TestIncidentRepo_Insert_Get_RoundTrip(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)

	inc := seedIncident(t, repo, -123.055913, 49.281441, domain.TypeFlood, baseTime)

	got, err := repo.Get(context.Background(), inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Location != inc.Location {
		t.Fatalf("expected round-trip lng/lat equal; got=%+v want=%+v", got.Location, inc.Location)
	}
	if got.Status != domain.StatusReported || len(got.StatusHistory) != 1 {
		t.Fatalf("unexpected status=%s history=%d", got.Status, len(got.StatusHistory))
	}
	if !got.Reporter.Equal(inc.Reporter) {
		t.Fatalf("reporter mismatch got=%v", got.Reporter)
	}
	if got.Upvotes == nil || len(got.Upvotes) != 0 {
		t.Fatalf("expected an empty upvote set, got %#v", got.Upvotes)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Fatalf("created_at mismatch got=%v", got.CreatedAt)
	}
}

func TestIncidentRepo_Get_NotFound(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_List_StatusFilter_WithPagination(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)

	for i := 0; i < 3; i++ {
		seedIncident(t, repo, 20+float64(i), 10+float64(i), domain.TypeFire, baseTime.Add(time.Duration(i)*time.Second))
	}
	other := seedIncident(t, repo, 1, 1, domain.TypeFire, baseTime.Add(time.Hour))
	next, err := other.Transition(domain.StatusCancelled, domain.RegisteredVoter("official"), "", domain.TransitionOptions{}, baseTime.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if err := repo.CompareAndSwapStatus(context.Background(), domain.StatusReported, next); err != nil {
		t.Fatalf("CompareAndSwapStatus: %v", err)
	}

	list1, total, err := repo.List(context.Background(), 1, 2, domain.StatusReported)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(list1) != 2 {
		t.Fatalf("expected total=3 len=2, got total=%d len=%d", total, len(list1))
	}
	if list1[0].CreatedAt.Before(list1[1].CreatedAt) {
		t.Fatalf("expected DESC order by created_at")
	}

	list2, _, err := repo.List(context.Background(), 2, 2, domain.StatusReported)
	if err != nil {
		t.Fatalf("List page2: %v", err)
	}
	if len(list2) != 1 {
		t.Fatalf("expected len=1 got=%d", len(list2))
	}

	_, all, err := repo.List(context.Background(), 1, 10, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if all != 4 {
		t.Fatalf("expected total=4 got=%d", all)
	}
}

func TestIncidentRepo_CompareAndSwapStatus(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)
	ctx := context.Background()
	official := domain.RegisteredVoter("official")

	inc := seedIncident(t, repo, 1, 1, domain.TypeFire, baseTime)
	verified, err := inc.Transition(domain.StatusVerified, official, "checked", domain.TransitionOptions{}, baseTime.Add(time.Minute))
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	if err := repo.CompareAndSwapStatus(ctx, domain.StatusReported, verified); err != nil {
		t.Fatalf("CompareAndSwapStatus: %v", err)
	}

	// a second writer that read the same version loses
	err = repo.CompareAndSwapStatus(ctx, domain.StatusReported, verified)
	if !errors.Is(err, e.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got: %v", err)
	}

	got, err := repo.Get(ctx, inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusVerified || len(got.StatusHistory) != 2 {
		t.Fatalf("unexpected status=%s history=%d", got.Status, len(got.StatusHistory))
	}
	if got.StatusHistory[1].Reason != "checked" || got.VerifiedAt == nil {
		t.Fatalf("expected the appended entry and verified_at, got %+v", got)
	}

	missing := verified.Clone()
	missing.ID = uuid.New()
	if err := repo.CompareAndSwapStatus(ctx, domain.StatusReported, missing); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_AddUpvote_ConcurrentSameVoter(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)
	inc := seedIncident(t, repo, 1, 1, domain.TypeFire, baseTime)
	voter := domain.GuestVoter("guest-a")

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AddUpvote(context.Background(), inc.ID, voter, baseTime)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, e.ErrDuplicateVote):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one accepted vote, got %d", ok)
	}

	got, err := repo.Get(context.Background(), inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UpvoteCount != 1 || len(got.Upvotes) != 1 || !got.Upvotes[0].Equal(voter) {
		t.Fatalf("unexpected upvotes: count=%d set=%v", got.UpvoteCount, got.Upvotes)
	}
}

func TestIncidentRepo_AddUpvote_MissingIncident(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)

	_, err := repo.AddUpvote(context.Background(), uuid.New(), domain.GuestVoter("guest-a"), baseTime)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_RemoveUpvote(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)
	inc := seedIncident(t, repo, 1, 1, domain.TypeFire, baseTime)
	voter := domain.RegisteredVoter("user-2")

	if _, err := repo.AddUpvote(context.Background(), inc.ID, voter, baseTime); err != nil {
		t.Fatalf("AddUpvote: %v", err)
	}
	got, err := repo.RemoveUpvote(context.Background(), inc.ID, voter, baseTime)
	if err != nil {
		t.Fatalf("RemoveUpvote: %v", err)
	}
	if got.UpvoteCount != 0 || len(got.Upvotes) != 0 {
		t.Fatalf("expected no upvotes, got count=%d", got.UpvoteCount)
	}

	_, err = repo.RemoveUpvote(context.Background(), inc.ID, voter, baseTime)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_UpdateScoreIf(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)
	ctx := context.Background()
	inc := seedIncident(t, repo, 1, 1, domain.TypeFire, baseTime)

	if _, err := repo.AddUpvote(ctx, inc.ID, domain.GuestVoter("g"), baseTime); err != nil {
		t.Fatalf("AddUpvote: %v", err)
	}

	if err := repo.UpdateScoreIf(ctx, inc.ID, 40, 0); !errors.Is(err, e.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got: %v", err)
	}
	if err := repo.UpdateScoreIf(ctx, inc.ID, 15, 1); err != nil {
		t.Fatalf("UpdateScoreIf: %v", err)
	}
	if err := repo.UpdateScoreIf(ctx, inc.ID, 101, 1); !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if err := repo.UpdateScoreIf(ctx, uuid.New(), 10, 0); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	got, err := repo.Get(ctx, inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VerificationScore != 15 {
		t.Fatalf("expected score=15 got=%d", got.VerificationScore)
	}
}

func TestIncidentRepo_FindNearby(t *testing.T) {
	truncateAll(t)
	repo := NewIncidentRepo(testPool, logger)
	ctx := context.Background()

	near := seedIncident(t, repo, 0, 0.0001, domain.TypeFire, baseTime)
	mid := seedIncident(t, repo, 0, 0.005, domain.TypeFire, baseTime)
	seedIncident(t, repo, 0, 0.001, domain.TypeFlood, baseTime)
	seedIncident(t, repo, 0, 1, domain.TypeFire, baseTime)

	closed := seedIncident(t, repo, 0, 0.0002, domain.TypeFire, baseTime)
	next, err := closed.Transition(domain.StatusFalseReport, domain.RegisteredVoter("official"), "", domain.TransitionOptions{}, baseTime)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if err := repo.CompareAndSwapStatus(ctx, domain.StatusReported, next); err != nil {
		t.Fatalf("CompareAndSwapStatus: %v", err)
	}

	got, err := repo.FindNearby(ctx, domain.NearbyQuery{
		Point:        domain.GeoPoint{Lng: 0, Lat: 0},
		RadiusMeters: 1000,
		Type:         domain.TypeFire,
	})
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Incident.ID != near.ID || got[1].Incident.ID != mid.ID {
		t.Fatalf("unexpected order: %v, %v", got[0].Incident.ID, got[1].Incident.ID)
	}
	want := domain.Haversine(domain.GeoPoint{}, near.Location)
	if diff := got[0].DistanceMeters - want; diff > 0.5 || diff < -0.5 {
		t.Fatalf("distance %v too far from haversine %v", got[0].DistanceMeters, want)
	}
}

func TestGuestRepo_IncrementActionIf_ExactQuota(t *testing.T) {
	truncateAll(t)
	repo := NewGuestRepo(testPool, logger)
	ctx := context.Background()

	g, err := domain.NewGuest(3, time.Hour, baseTime)
	if err != nil {
		t.Fatalf("NewGuest: %v", err)
	}
	if err := repo.CreateGuest(ctx, g); err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}

	const callers = 12
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.IncrementActionIf(ctx, g.ID, baseTime.Add(time.Minute))
		}(i)
	}
	wg.Wait()

	ok, limited := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, e.ErrLimitExceeded):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 3 || limited != callers-3 {
		t.Fatalf("expected 3 ok and %d limited, got ok=%d limited=%d", callers-3, ok, limited)
	}

	granted, err := repo.GrantActions(ctx, g.ID, 2)
	if err != nil {
		t.Fatalf("GrantActions: %v", err)
	}
	if granted.MaxActions != 5 || granted.Remaining() != 2 {
		t.Fatalf("unexpected guest after grant: %+v", granted)
	}
}

func TestGuestRepo_IncrementActionIf_Expired(t *testing.T) {
	truncateAll(t)
	repo := NewGuestRepo(testPool, logger)
	ctx := context.Background()

	g, err := domain.NewGuest(3, time.Minute, baseTime)
	if err != nil {
		t.Fatalf("NewGuest: %v", err)
	}
	if err := repo.CreateGuest(ctx, g); err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}

	_, err = repo.IncrementActionIf(ctx, g.ID, baseTime.Add(time.Hour))
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if _, err := repo.IncrementActionIf(ctx, "missing", baseTime); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
