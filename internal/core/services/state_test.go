package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/core/ports/mocks"
	"github.com/srgjo27/launch_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStateSaveAll_ReportsEveryFailure(t *testing.T) {
	f := newFixture(t, twoOrganizers(), withSaveBookingsErr(errors.New("bookings file locked")))

	err := f.state.SaveAll(f.ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrPersistence)
	assert.Contains(t, err.Error(), "bookings file locked")
	f.feedbackRepo.AssertCalled(t, "SaveFeedback", mock.Anything, mock.Anything)
}

func TestStateLoad_StopsOnRepositoryError(t *testing.T) {
	venues := mocks.NewVenueRepository(t)
	venues.On("LoadVenues", mock.Anything).Return(nil, errors.New("permission denied"))

	state := services.NewState(ports.Repositories{Venues: venues}, domain.TimeSlotConfig{})
	err := state.Load(context.Background())

	assert.ErrorContains(t, err, "load venues")
	assert.Equal(t, domain.DefaultTimeSlots(), state.TimeSlots)
}
