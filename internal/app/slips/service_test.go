package slips

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	appboard "github.com/preston-bernstein/football-slip-service/internal/app/board"
	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	domainslips "github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
	"github.com/preston-bernstein/football-slip-service/internal/store"
	"github.com/preston-bernstein/football-slip-service/internal/teststubs"
)

var (
	today   = "2099-03-09"
	kickoff = time.Date(2099, 3, 9, 15, 0, 0, 0, time.UTC)
	morning = time.Date(2099, 3, 9, 9, 0, 0, 0, time.UTC)
	user    = Identity{UserID: "u1"}
)

type fixture struct {
	svc       *Service
	boards    *store.MemoryStore
	slips     *store.MemorySlipStore
	pools     *store.MemoryPoolStore
	notifier  *teststubs.StubNotifier
	publisher *teststubs.StubPublisher
	metrics   *metrics.Recorder
	clock     *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := leagues.New([]leagues.League{{Key: 1, Name: "Premier League", SeasonID: "sr:season:1"}})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	boards := store.NewMemoryStore()
	boards.SetBoard(domainboard.NewSnapshot(1, today,
		[]matches.Match{
			{ID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTime: kickoff, Status: matches.StatusNotStarted},
			{ID: "m2", HomeTeam: "Spurs", AwayTeam: "Fulham", StartTime: kickoff.Add(2 * time.Hour), Status: matches.StatusNotStarted},
			{ID: "m3", HomeTeam: "Leeds", AwayTeam: "Hull", StartTime: kickoff.Add(-4 * time.Hour), Status: matches.StatusEnded},
		},
		[]odds.Quote{
			quote("Arsenal", "Chelsea", "2.10", "3.40", "4.75"),
			quote("Spurs", "Fulham", "1.90", "3.60", "4.10"),
		},
		morning,
	))
	boardSvc := appboard.NewService(boards, nil, reg, appboard.Config{BookIndex: 0})

	f := &fixture{
		boards:    boards,
		slips:     store.NewMemorySlipStore(),
		pools:     store.NewMemoryPoolStore(),
		notifier:  &teststubs.StubNotifier{},
		publisher: &teststubs.StubPublisher{},
		metrics:   metrics.NewRecorder(),
	}
	clock := morning
	f.clock = &clock
	f.svc = NewService(f.slips, f.pools, boardSvc, Config{ClearGrace: 3 * time.Hour},
		WithNotifier(f.notifier),
		WithPublisher(f.publisher),
		WithMetrics(f.metrics),
	)
	f.svc.now = func() time.Time { return *f.clock }
	f.svc.newID = func() string { return "pool-1" }
	return f
}

func quote(home, away, h, d, a string) odds.Quote {
	return odds.Quote{
		HomeTeam: home,
		AwayTeam: away,
		Markets: []odds.Market{{Books: []odds.Book{
			{Outcomes: []odds.Outcome{{Odds: h}, {Odds: d}, {Odds: a}}},
		}}},
	}
}

func pick(home, away string, kind domainslips.Kind) PickRequest {
	return PickRequest{LeagueKey: 1, Date: today, HomeTeam: home, AwayTeam: away, Selection: kind}
}

func TestToggleAddsThenRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindDraw))
	if err != nil {
		t.Fatalf("toggle add: %v", err)
	}
	if res.Action != domainslips.ActionAdded || len(res.Slip.Selections) != 1 || res.Slip.Selections[0].Odds != "3.40" {
		t.Fatalf("unexpected add result %+v", res)
	}
	if res.Slip.Selections[0].LeagueKey != "sr:season:1" {
		t.Fatalf("expected league key from season, got %s", res.Slip.Selections[0].LeagueKey)
	}

	stored, _ := f.svc.Get(ctx, user)
	if len(stored.Selections) != 1 {
		t.Fatalf("expected slip persisted")
	}

	res, err = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindDraw))
	if err != nil || res.Action != domainslips.ActionRemoved || len(res.Slip.Selections) != 0 {
		t.Fatalf("expected removal, got %+v err %v", res, err)
	}
	if f.metrics.SlipActions("toggle", "added") != 1 || f.metrics.SlipActions("toggle", "removed") != 1 {
		t.Fatalf("expected toggle metrics recorded")
	}
}

func TestToggleEndedMatchNotifiesAndKeepsSlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, user, pick("Leeds", "Hull", domainslips.KindHome))
	if !errors.Is(err, domainslips.ErrMatchEnded) {
		t.Fatalf("expected match ended, got %v", err)
	}
	notices := f.notifier.For("u1")
	if len(notices) != 1 || notices[0].Message != "Match ended, cannot add match to slip" {
		t.Fatalf("expected ended notice pushed, got %+v", notices)
	}
	if _, err := f.slips.GetSlip(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected nothing persisted, got %v", err)
	}
	if f.metrics.SlipActions("toggle", "match_ended") != 1 {
		t.Fatalf("expected rejection counted")
	}
}

func TestToggleWithoutOddsRejected(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.boards.GetBoard(1, today)
	snap.Quotes = nil
	f.boards.SetBoard(snap)

	_, err := f.svc.Toggle(context.Background(), user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if !errors.Is(err, domainslips.ErrOddsUnavailable) {
		t.Fatalf("expected odds unavailable, got %v", err)
	}
}

func TestToggleUnknownFixture(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Toggle(context.Background(), user, pick("Chelsea", "Arsenal", domainslips.KindHome))
	if !errors.Is(err, domainslips.ErrUnknownMatch) {
		t.Fatalf("expected unknown match, got %v", err)
	}

	req := pick("Arsenal", "Chelsea", domainslips.KindHome)
	req.LeagueKey = 42
	if _, err := f.svc.Toggle(context.Background(), user, req); !errors.Is(err, domainslips.ErrUnknownMatch) {
		t.Fatalf("expected unknown league to miss, got %v", err)
	}
}

func TestAnonymousCannotMutate(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Toggle(context.Background(), Identity{}, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if !errors.Is(err, domainslips.ErrLoginRequired) {
		t.Fatalf("expected login required, got %v", err)
	}
	slip, err := f.svc.Get(context.Background(), Identity{})
	if err != nil || len(slip.Selections) != 0 {
		t.Fatalf("expected empty slip for anonymous, got %+v", slip)
	}
}

func TestGuestCanBuildButNotSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	guest := Identity{SessionID: "s1"}

	if _, err := f.svc.Toggle(ctx, guest, pick("Arsenal", "Chelsea", domainslips.KindHome)); err != nil {
		t.Fatalf("guest toggle: %v", err)
	}
	if _, err := f.slips.GetSlip(ctx, "guest:s1"); err != nil {
		t.Fatalf("expected guest slip stored, got %v", err)
	}

	_, err := f.svc.Submit(ctx, guest)
	if !errors.Is(err, domainslips.ErrLoginRequired) {
		t.Fatalf("expected login required, got %v", err)
	}
	if got := f.notifier.For("guest:s1"); len(got) != 1 || got[0].Message != "Login to create bet slip" {
		t.Fatalf("expected login notice, got %+v", got)
	}
}

func TestAddRejectsSecondPickOnSameMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Add(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome)); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := f.svc.Add(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if !errors.Is(err, domainslips.ErrMatchInSlip) {
		t.Fatalf("expected match in slip, got %v", err)
	}
	_, err = f.svc.Add(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindAway))
	if !errors.Is(err, domainslips.ErrMatchInSlip) {
		t.Fatalf("expected match in slip for other outcome, got %v", err)
	}
	if _, err := f.svc.Add(ctx, user, pick("Leeds", "Hull", domainslips.KindAway)); !errors.Is(err, domainslips.ErrMatchEnded) {
		t.Fatalf("expected ended match rejected, got %v", err)
	}
}

func TestSubmitGuardsAndSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, user); !errors.Is(err, domainslips.ErrEmptySlip) {
		t.Fatalf("expected empty slip, got %v", err)
	}

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	_, _ = f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindAway))

	res, err := f.svc.Submit(ctx, user)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Redirect != "/betting-slips" || res.Notice.Message != "Slip successfully created" {
		t.Fatalf("unexpected submit result %+v", res)
	}
	if res.Pool.ID != "pool-1" || len(res.Pool.Selections) != 2 || !res.Slip.EnteredPool() {
		t.Fatalf("unexpected pool %+v", res.Pool)
	}
	if _, err := f.pools.GetPool(ctx, "pool-1"); err != nil {
		t.Fatalf("expected pool stored, got %v", err)
	}
	if f.publisher.Count() != 1 || f.metrics.PoolsEntered() != 1 {
		t.Fatalf("expected pool published and counted")
	}
	last := f.notifier.For("u1")
	if len(last) == 0 || last[len(last)-1].Code != "slip_created" {
		t.Fatalf("expected success notice, got %+v", last)
	}

	if _, err := f.svc.Submit(ctx, user); !errors.Is(err, domainslips.ErrPoolLocked) {
		t.Fatalf("expected pool locked on resubmit, got %v", err)
	}
	if _, err := f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindDraw)); !errors.Is(err, domainslips.ErrPoolLocked) {
		t.Fatalf("expected entered slip to refuse new picks, got %v", err)
	}
}

func TestSubmitPublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.publisher.Err = errors.New("broker down")

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if _, err := f.svc.Submit(ctx, user); err != nil {
		t.Fatalf("expected submit to succeed, got %v", err)
	}
}

func TestRemoveFromEnteredPoolUntilKickoff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	_, _ = f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindAway))
	if _, err := f.svc.Submit(ctx, user); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindAway)); err != nil {
		t.Fatalf("expected removal before kickoff, got %v", err)
	}
	pool, _ := f.pools.GetPool(ctx, "pool-1")
	if len(pool.Selections) != 1 {
		t.Fatalf("expected pool updated after removal, got %d selections", len(pool.Selections))
	}

	*f.clock = kickoff
	_, err := f.svc.Remove(ctx, user, "Arsenal", "Chelsea", domainslips.KindHome)
	if !errors.Is(err, domainslips.ErrPoolLocked) {
		t.Fatalf("expected pool locked after kickoff, got %v", err)
	}
}

func TestRemoveMissingPick(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Remove(context.Background(), user, "Arsenal", "Chelsea", domainslips.KindHome)
	if !errors.Is(err, domainslips.ErrNotInSlip) {
		t.Fatalf("expected not in slip, got %v", err)
	}
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if err := f.svc.Clear(ctx, user); err != nil {
		t.Fatalf("clear draft: %v", err)
	}
	slip, _ := f.svc.Get(ctx, user)
	if len(slip.Selections) != 0 {
		t.Fatalf("expected empty slip after clear")
	}

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	_, _ = f.svc.Submit(ctx, user)

	*f.clock = kickoff.Add(time.Hour)
	if err := f.svc.Clear(ctx, user); !errors.Is(err, domainslips.ErrPoolLocked) {
		t.Fatalf("expected clear blocked during matches, got %v", err)
	}

	*f.clock = kickoff.Add(3 * time.Hour)
	if err := f.svc.Clear(ctx, user); err != nil {
		t.Fatalf("expected clear after grace, got %v", err)
	}
	if _, err := f.svc.Pool(ctx, "pool-1"); err != nil {
		t.Fatalf("expected pool to outlive the slip, got %v", err)
	}
}

func TestConcurrentTogglesSerialized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Add(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else if !errors.Is(err, domainslips.ErrMatchInSlip) {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one add to win, got %d", ok)
	}
	if f.svc.locks.size() != 0 {
		t.Fatalf("expected locks released")
	}
}

func TestIdentityKey(t *testing.T) {
	if (Identity{UserID: "u", SessionID: "s"}).Key() != "u" {
		t.Fatalf("expected user id to win")
	}
	if (Identity{SessionID: "s"}).Key() != "guest:s" {
		t.Fatalf("expected guest key")
	}
	if (Identity{}).Key() != "" {
		t.Fatalf("expected empty key")
	}
	if (Identity{UserID: "u", SessionID: "s"}).guestKey() != "guest:s" || (Identity{SessionID: "s"}).guestKey() != "" {
		t.Fatalf("expected guest key only for logged-in sessions")
	}
}

type flakySlipStore struct {
	*store.MemorySlipStore
	failEntered bool
}

func (s *flakySlipStore) SaveSlip(ctx context.Context, slip domainslips.Slip) error {
	if s.failEntered && slip.EnteredPool() {
		return errors.New("redis down")
	}
	return s.MemorySlipStore.SaveSlip(ctx, slip)
}

type flakyPoolStore struct {
	*store.MemoryPoolStore
	err error
}

func (s *flakyPoolStore) SavePool(ctx context.Context, pool domainslips.Pool) error {
	if s.err != nil {
		return s.err
	}
	return s.MemoryPoolStore.SavePool(ctx, pool)
}

func (f *fixture) serviceWith(slipStore store.SlipStore, poolStore store.PoolStore, boards Boards) *Service {
	svc := NewService(slipStore, poolStore, boards, Config{ClearGrace: 3 * time.Hour}, WithMetrics(f.metrics))
	svc.now = func() time.Time { return *f.clock }
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("pool-%d", ids)
	}
	return svc
}

func boardsAt(t *testing.T, ms *store.MemoryStore, now time.Time) *appboard.Service {
	t.Helper()
	reg, err := leagues.New([]leagues.League{{Key: 1, Name: "Premier League", SeasonID: "sr:season:1"}})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return appboard.NewService(ms, nil, reg, appboard.Config{BookIndex: 0, Now: func() time.Time { return now }})
}

func TestGuestSlipAdoptedOnLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Toggle(ctx, Identity{SessionID: "s1"}, pick("Arsenal", "Chelsea", domainslips.KindHome)); err != nil {
		t.Fatalf("guest toggle: %v", err)
	}

	loggedIn := Identity{UserID: "u1", SessionID: "s1"}
	slip, err := f.svc.Get(ctx, loggedIn)
	if err != nil || len(slip.Selections) != 1 || slip.UserID != "u1" {
		t.Fatalf("expected guest picks visible after login, got %+v err %v", slip, err)
	}

	res, err := f.svc.Submit(ctx, loggedIn)
	if err != nil {
		t.Fatalf("submit after login: %v", err)
	}
	if res.Pool.UserID != "u1" || len(res.Pool.Selections) != 1 {
		t.Fatalf("unexpected pool %+v", res.Pool)
	}
	if _, err := f.slips.GetSlip(ctx, "guest:s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected guest slip dropped, got %v", err)
	}
	stored, err := f.slips.GetSlip(ctx, "u1")
	if err != nil || !stored.EnteredPool() {
		t.Fatalf("expected entered slip under user key, got %+v err %v", stored, err)
	}
	if f.svc.locks.size() != 0 {
		t.Fatalf("expected locks released")
	}
}

func TestExistingUserSlipWinsOverGuestSlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, Identity{SessionID: "s1"}, pick("Arsenal", "Chelsea", domainslips.KindHome))
	_, _ = f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindAway))

	res, err := f.svc.Toggle(ctx, Identity{UserID: "u1", SessionID: "s1"}, pick("Arsenal", "Chelsea", domainslips.KindDraw))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(res.Slip.Selections) != 2 || res.Slip.Selections[0].HomeTeam != "Spurs" {
		t.Fatalf("expected user slip kept, got %+v", res.Slip)
	}
	if _, err := f.slips.GetSlip(ctx, "guest:s1"); err != nil {
		t.Fatalf("expected guest slip left alone, got %v", err)
	}
}

func TestClearAfterLoginDropsGuestSlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, Identity{SessionID: "s1"}, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if err := f.svc.Clear(ctx, Identity{UserID: "u1", SessionID: "s1"}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := f.slips.GetSlip(ctx, "guest:s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected guest slip cleared, got %v", err)
	}
}

func TestSubmitSlipWriteFailureLeavesNoPool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slipStore := &flakySlipStore{MemorySlipStore: store.NewMemorySlipStore(), failEntered: true}
	svc := f.serviceWith(slipStore, f.pools, f.svc.boards)

	if _, err := svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome)); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Submit(ctx, user); err == nil {
		t.Fatalf("expected submit to fail")
	}
	if _, err := f.pools.GetPool(ctx, "pool-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no pool stored, got %v", err)
	}
	if f.metrics.PoolsEntered() != 0 {
		t.Fatalf("expected no pool counted")
	}

	slipStore.failEntered = false
	res, err := svc.Submit(ctx, user)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Pool.ID != "pool-2" {
		t.Fatalf("unexpected pool id %s", res.Pool.ID)
	}
	if _, err := f.pools.GetPool(ctx, "pool-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected only the retried pool stored, got %v", err)
	}
}

func TestSubmitPoolWriteFailureRestoresDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pools := &flakyPoolStore{MemoryPoolStore: store.NewMemoryPoolStore(), err: errors.New("postgres down")}
	svc := f.serviceWith(f.slips, pools, f.svc.boards)

	_, _ = svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if _, err := svc.Submit(ctx, user); err == nil {
		t.Fatalf("expected submit to fail")
	}
	slip, err := f.slips.GetSlip(ctx, "u1")
	if err != nil || slip.EnteredPool() || len(slip.Selections) != 1 {
		t.Fatalf("expected draft restored, got %+v err %v", slip, err)
	}

	pools.err = nil
	if _, err := svc.Submit(ctx, user); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestRemovingLastPickWithdrawsPool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if _, err := f.svc.Submit(ctx, user); err != nil {
		t.Fatalf("submit: %v", err)
	}

	res, err := f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if res.Slip.EnteredPool() || res.Slip.EnteredAt != nil {
		t.Fatalf("expected slip back to draft, got %+v", res.Slip)
	}
	if _, err := f.pools.GetPool(ctx, "pool-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected pool withdrawn, got %v", err)
	}

	if _, err := f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindDraw)); err != nil {
		t.Fatalf("expected picks allowed after withdrawal, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, user); err != nil {
		t.Fatalf("expected resubmit, got %v", err)
	}
	if _, err := f.svc.Remove(ctx, user, "Spurs", "Fulham", domainslips.KindDraw); err != nil {
		t.Fatalf("remove: %v", err)
	}
	slip, _ := f.svc.Get(ctx, user)
	if slip.EnteredPool() {
		t.Fatalf("expected remove of last pick to withdraw too")
	}
}

func TestToggleOffPickAfterItsDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	_, _ = f.svc.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindHome))

	nextDay := kickoff.Add(10 * time.Hour)
	*f.clock = nextDay
	late := f.serviceWith(f.slips, f.pools, boardsAt(t, f.boards, nextDay))

	res, err := late.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindHome))
	if err != nil || res.Action != domainslips.ActionRemoved {
		t.Fatalf("expected held pick removed, got %+v err %v", res, err)
	}
	if _, err := late.Toggle(ctx, user, pick("Arsenal", "Chelsea", domainslips.KindAway)); !errors.Is(err, domainslips.ErrUnknownMatch) {
		t.Fatalf("expected new pick on past day rejected, got %v", err)
	}

	gone := f.serviceWith(f.slips, f.pools, boardsAt(t, store.NewMemoryStore(), nextDay))
	res, err = gone.Toggle(ctx, user, pick("Spurs", "Fulham", domainslips.KindHome))
	if err != nil || res.Action != domainslips.ActionRemoved || len(res.Slip.Selections) != 0 {
		t.Fatalf("expected removal without a board, got %+v err %v", res, err)
	}
}
