package reset_round_allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
)

type fakeRounds struct {
	round        *domain.ApplicationRound
	datesCleared bool
}

func (f *fakeRounds) GetByID(_ context.Context, id int64) (*domain.ApplicationRound, error) {
	if f.round == nil || f.round.ID != id {
		return nil, roundRepo.ErrRoundNotFound
	}
	return f.round, nil
}

func (f *fakeRounds) ClearResultDates(_ context.Context, _ int64) error {
	f.datesCleared = true
	return nil
}

type fakeOptions struct {
	calls        *[]string
	flagsCleared bool
}

func (f *fakeOptions) ClearFlagsByRoundID(_ context.Context, _ int64) error {
	*f.calls = append(*f.calls, "clear_flags")
	f.flagsCleared = true
	return nil
}

type fakeAllocations struct {
	calls *[]string
	count int64
}

func (f *fakeAllocations) DeleteByRoundID(_ context.Context, _ int64) (int64, error) {
	*f.calls = append(*f.calls, "delete_slots")
	return f.count, nil
}

type fakeReservations struct {
	calls *[]string
	count int64
}

func (f *fakeReservations) DeleteSeasonalByRoundID(_ context.Context, _ int64) (int64, error) {
	*f.calls = append(*f.calls, "delete_reservations")
	return f.count, nil
}

type fakeHierarchy struct {
	units map[int64]*domain.ReservationUnit
}

func (f *fakeHierarchy) Unit(unitID int64) (*domain.ReservationUnit, bool) {
	unit, ok := f.units[unitID]
	return unit, ok
}

type fakePermissions struct {
	denied bool
}

func (f *fakePermissions) Authorize(_ context.Context, _ domain.Actor, _ permissions.Action, _ permissions.Target) error {
	if f.denied {
		return permissions.ErrAccessDenied
	}
	return nil
}

type fakeEvents struct {
	published []events.RoundResetEvent
}

func (f *fakeEvents) PublishRoundReset(_ context.Context, event events.RoundResetEvent) error {
	f.published = append(f.published, event)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	rounds       *fakeRounds
	options      *fakeOptions
	allocations  *fakeAllocations
	reservations *fakeReservations
	permissions  *fakePermissions
	events       *fakeEvents
	calls        []string
}

// Раунд с периодом приема 1 янв - 1 июн 2025; на 1 июля раунд в фазе
// аллокации, слоты и брони уже есть
func newFixture() *fixture {
	round := &domain.ApplicationRound{
		ID:                     1,
		Name:                   "Season 2025/2026",
		ApplicationPeriodBegin: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ApplicationPeriodEnd:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ReservationPeriodBegin: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		ReservationPeriodEnd:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		ReservationUnitIDs:     []int64{10},
	}

	f := &fixture{
		rounds:      &fakeRounds{round: round},
		permissions: &fakePermissions{},
		events:      &fakeEvents{},
	}
	f.options = &fakeOptions{calls: &f.calls}
	f.allocations = &fakeAllocations{calls: &f.calls, count: 5}
	f.reservations = &fakeReservations{calls: &f.calls, count: 12}
	f.uc = NewUseCase(
		f.rounds,
		f.options,
		f.allocations,
		f.reservations,
		&fakeHierarchy{units: map[int64]*domain.ReservationUnit{10: {ID: 10, UnitID: 200}}},
		f.permissions,
		f.events,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

func request() *Request {
	return &Request{
		Actor:   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		RoundID: 1,
	}
}

func TestExecute_ResetsHandledRound(t *testing.T) {
	f := newFixture()
	handled := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	sent := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	f.rounds.round.HandledDate = &handled
	f.rounds.round.SentDate = &sent

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.DeletedSlots)
	assert.Equal(t, int64(12), resp.DeletedReservations)
	assert.True(t, f.options.flagsCleared)
	assert.True(t, f.rounds.datesCleared)

	// Сезонные брони ссылаются на слоты и удаляются первыми
	assert.Equal(t, []string{"delete_reservations", "delete_slots", "clear_flags"}, f.calls)

	require.Len(t, f.events.published, 1)
	assert.Equal(t, int64(1), f.events.published[0].ApplicationRoundID)
	assert.Equal(t, int64(5), f.events.published[0].DeletedSlots)
}

func TestExecute_ResetsRoundInAllocation(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// Раунд еще не обработан: сезонных броней нет, репозиторий не трогается
	assert.Equal(t, int64(0), resp.DeletedReservations)
	assert.Equal(t, []string{"delete_slots", "clear_flags"}, f.calls)
	assert.Equal(t, int64(5), resp.DeletedSlots)
	assert.True(t, f.rounds.datesCleared)
}

func TestExecute_RoundNotStarted(t *testing.T) {
	f := newFixture()
	// Период приема еще открыт
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrRoundNotStarted)
	assert.Empty(t, f.calls)

	// Раунд еще не начался
	f = newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)}

	_, err = f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrRoundNotStarted)
}

func TestExecute_RoundNotFound(t *testing.T) {
	f := newFixture()
	req := request()
	req.RoundID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()
	f.permissions.denied = true

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.calls)
	assert.False(t, f.rounds.datesCleared)
}
