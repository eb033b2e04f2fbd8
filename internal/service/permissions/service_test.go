package permissions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SeasonalService/internal/domain"
	"github.com/m04kA/SMC-SeasonalService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-SeasonalService/pkg/ptr"
)

type fakeProfileClient struct {
	profiles map[int64]*profileservice.Profile
	err      error
}

func (f *fakeProfileClient) GetProfileWithGracefulDegradation(_ context.Context, userID int64) (*profileservice.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, profileservice.ErrProfileNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAuthorize_AdminCanEverything(t *testing.T) {
	svc := NewService(&fakeProfileClient{}, nopLogger{})
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	err := svc.Authorize(context.Background(), admin, ActionResetAllocation, Target{UnitIDs: []int64{1, 2, 3}})
	assert.NoError(t, err)
}

func TestAuthorize_HandlerManagedUnits(t *testing.T) {
	client := &fakeProfileClient{
		profiles: map[int64]*profileservice.Profile{
			5: {UserID: 5, Role: "handler", ManagedUnitIDs: []int64{10, 20}},
		},
	}
	svc := NewService(client, nopLogger{})
	handler := domain.Actor{UserID: 5, Role: domain.RoleHandler}

	err := svc.Authorize(context.Background(), handler, ActionCreateAllocation, Target{UnitIDs: []int64{10}})
	assert.NoError(t, err)

	err = svc.Authorize(context.Background(), handler, ActionCreateAllocation, Target{UnitIDs: []int64{10, 30}})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthorize_HandlerProfileDegraded(t *testing.T) {
	client := &fakeProfileClient{err: profileservice.ErrServiceDegraded}
	svc := NewService(client, nopLogger{})
	handler := domain.Actor{UserID: 5, Role: domain.RoleHandler}

	err := svc.Authorize(context.Background(), handler, ActionCreateAllocation, Target{UnitIDs: []int64{10}})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthorize_ReserverOwnApplication(t *testing.T) {
	svc := NewService(&fakeProfileClient{}, nopLogger{})
	reserver := domain.Actor{UserID: 7, Role: domain.RoleReserver}

	err := svc.Authorize(context.Background(), reserver, ActionCreateSection, Target{ApplicationOwnerID: ptr.Ptr(int64(7))})
	assert.NoError(t, err)

	err = svc.Authorize(context.Background(), reserver, ActionCreateSection, Target{ApplicationOwnerID: ptr.Ptr(int64(8))})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAuthorize_ReserverCannotAllocate(t *testing.T) {
	svc := NewService(&fakeProfileClient{}, nopLogger{})
	reserver := domain.Actor{UserID: 7, Role: domain.RoleReserver}

	err := svc.Authorize(context.Background(), reserver, ActionCreateAllocation, Target{ApplicationOwnerID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
