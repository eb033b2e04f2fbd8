package allocate_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	optionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/option"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	"github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	"github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
)

type fakeRounds struct {
	round *domain.ApplicationRound
}

func (f *fakeRounds) GetByID(_ context.Context, _ int64) (*domain.ApplicationRound, error) {
	return f.round, nil
}

type fakeApplications struct {
	application *domain.Application
}

func (f *fakeApplications) GetByID(_ context.Context, _ int64) (*domain.Application, error) {
	return f.application, nil
}

type fakeSections struct {
	section *domain.ApplicationSection
}

func (f *fakeSections) GetByID(_ context.Context, _ int64) (*domain.ApplicationSection, error) {
	return f.section, nil
}

type fakeOptions struct {
	option *domain.ReservationUnitOption
}

func (f *fakeOptions) GetByID(_ context.Context, id int64) (*domain.ReservationUnitOption, error) {
	if f.option == nil || f.option.ID != id {
		return nil, optionRepo.ErrOptionNotFound
	}
	return f.option, nil
}

type fakeAllocations struct {
	existing []*domain.AllocatedTimeSlot
	created  []*domain.AllocatedTimeSlot
}

func (f *fakeAllocations) Create(_ context.Context, slot *domain.AllocatedTimeSlot) (*domain.AllocatedTimeSlot, error) {
	slot.ID = int64(len(f.created) + 100)
	slot.CreatedAt = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, slot)
	return slot, nil
}

func (f *fakeAllocations) GetBySectionID(_ context.Context, _ int64) ([]*domain.AllocatedTimeSlot, error) {
	return f.existing, nil
}

type fakeTimespans struct {
	busy []domain.TimeSpan
}

func (f *fakeTimespans) AffectingSpans(_ context.Context, _ int64, _, _ time.Time, _ timespans.Options) ([]domain.TimeSpan, error) {
	return f.busy, nil
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
	published []events.AllocationCreatedEvent
}

func (f *fakeEvents) PublishAllocationCreated(_ context.Context, event events.AllocationCreatedEvent) error {
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
	uc          *UseCase
	allocations *fakeAllocations
	options     *fakeOptions
	timespans   *fakeTimespans
	permissions *fakePermissions
	events      *fakeEvents
}

// Раунд с периодом приема 1 янв - 1 июн 2025 и периодом резервирования
// 1 сен 2025 - 31 мая 2026; на 1 июля раунд находится в фазе аллокации
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
	section := &domain.ApplicationSection{
		ID:                            5,
		ApplicationID:                 3,
		Name:                          "Junior practice",
		AppliedReservationsPerWeek:    2,
		ReservationMinDurationMinutes: 60,
		ReservationMaxDurationMinutes: 120,
		ReservationsBeginDate:         round.ReservationPeriodBegin,
		ReservationsEndDate:           round.ReservationPeriodEnd,
	}
	application := &domain.Application{
		ID:                 3,
		ApplicationRoundID: 1,
		UserID:             77,
	}
	option := &domain.ReservationUnitOption{
		ID:                   50,
		ApplicationSectionID: 5,
		ReservationUnitID:    10,
		PreferredOrder:       0,
	}

	f := &fixture{
		allocations: &fakeAllocations{},
		options:     &fakeOptions{option: option},
		timespans:   &fakeTimespans{},
		permissions: &fakePermissions{},
		events:      &fakeEvents{},
	}
	f.uc = NewUseCase(
		&fakeRounds{round: round},
		&fakeApplications{application: application},
		&fakeSections{section: section},
		f.options,
		f.allocations,
		f.timespans,
		&fakeHierarchy{units: map[int64]*domain.ReservationUnit{10: {ID: 10, UnitID: 200}}},
		f.permissions,
		f.events,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		Actor:                   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		ReservationUnitOptionID: 50,
		DayOfTheWeek:            domain.Monday,
		BeginTime:               "10:00",
		EndTime:                 "11:00",
	}
}

func TestExecute_AllocatesSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(50), resp.ReservationUnitOptionID)
	assert.Equal(t, int64(5), resp.ApplicationSectionID)
	assert.Equal(t, int64(10), resp.ReservationUnitID)
	assert.Equal(t, domain.Monday, resp.DayOfTheWeek)
	require.Len(t, f.allocations.created, 1)
	require.Len(t, f.events.published, 1)
	assert.Equal(t, resp.ID, f.events.published[0].AllocationID)
}

func TestExecute_OptionNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ReservationUnitOptionID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()
	f.permissions.denied = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.allocations.created)
}

func TestExecute_RejectedOption(t *testing.T) {
	f := newFixture()
	f.options.option.Rejected = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOptionRejected)
}

func TestExecute_LockedOption(t *testing.T) {
	f := newFixture()
	f.options.option.Locked = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOptionLocked)
}

func TestExecute_RoundNotInAllocation(t *testing.T) {
	f := newFixture()
	// Период приема еще открыт
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoundNotInAllocation)
}

func TestExecute_DurationChecks(t *testing.T) {
	f := newFixture()

	// Не кратно 30 минутам
	req := validRequest()
	req.EndTime = "10:45"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Короче минимума секции (60 минут)
	req = validRequest()
	req.EndTime = "10:30"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Длиннее максимума секции (120 минут)
	req = validRequest()
	req.EndTime = "12:30"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_DayAlreadyAllocated(t *testing.T) {
	f := newFixture()
	f.allocations.existing = []*domain.AllocatedTimeSlot{
		{ID: 90, ReservationUnitOptionID: 50, DayOfTheWeek: domain.Monday, BeginTime: "08:00", EndTime: "09:00"},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDayAlreadyAllocated)
}

func TestExecute_QuotaReached(t *testing.T) {
	f := newFixture()
	// Секция просила 2 слота в неделю и уже получила их на других днях
	f.allocations.existing = []*domain.AllocatedTimeSlot{
		{ID: 90, ReservationUnitOptionID: 50, DayOfTheWeek: domain.Tuesday, BeginTime: "08:00", EndTime: "09:00"},
		{ID: 91, ReservationUnitOptionID: 50, DayOfTheWeek: domain.Thursday, BeginTime: "08:00", EndTime: "09:00"},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrQuotaReached)
}

func TestExecute_OverlapWithBusySpan(t *testing.T) {
	f := newFixture()
	// 1 сентября 2025 - понедельник, занятость 10:30-12:00 пересекает кандидата
	f.timespans.busy = []domain.TimeSpan{
		{
			Start: time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Empty(t, f.allocations.created)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.DayOfTheWeek = "someday"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.BeginTime = "11:00"
	req.EndTime = "10:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
