package handler_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/launch_booking/internal/adapter/handler"
	"github.com/srgjo27/launch_booking/internal/adapter/repository/flatfile"
	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func newServices(t *testing.T, dir string) handler.Services {
	t.Helper()

	store, err := flatfile.NewStore(dir)
	require.NoError(t, err)

	state := services.NewState(store.Repositories(), domain.DefaultTimeSlots())
	require.NoError(t, state.Load(context.Background()))

	bookings := services.NewBookingService(state, services.NewAvailabilityService(state, nil))
	return handler.Services{
		State:         state,
		Users:         services.NewUserService(state),
		Registrations: services.NewRegistrationService(state, bookings),
		Bookings:      bookings,
		Payments:      services.NewPaymentService(state),
		Feedback:      services.NewFeedbackService(state),
		Monitoring:    services.NewMonitoringService(state),
	}
}

func TestConsole_SignUpRegisterAndBook(t *testing.T) {
	dir := t.TempDir()
	input := []string{
		// sign up
		"2", "Aisha Karim", "34", "Nova Mobile", "Marketing Lead", "0123456789", "aisha@nova.example", "Secret1",
		// register an event
		"1", "1", "Nova X Launch", "Nova Mobile", "Flagship reveal", "250", "12000", "1", "Nova X", "NX-1", "3999", "0",
		// book Hall A in the morning with sound and a video wall
		"2", "1", "1", "2099-10-01", "1", "1", "y", "1,3", "2", "0",
		// log out and leave
		"7", "0",
	}
	var out bytes.Buffer
	console := handler.NewConsole(newServices(t, dir), handler.NewPrompter(strings.NewReader(strings.Join(input, "\n")+"\n"), &out))

	console.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Your user ID is USER1001")
	assert.Contains(t, text, "Event registered with ID EVT1001")
	assert.Contains(t, text, "Booking created with status Pending")
	assert.Contains(t, text, "BKG2001 | Nova X Launch | 2099-10-01 Morning | Hall A | Pending | RM 4800.00")
	assert.Contains(t, text, "Logged out.")
	assert.Contains(t, text, "Goodbye.")
	assert.NotContains(t, text, "Error:")

	reloaded := newServices(t, dir).State
	require.Len(t, reloaded.Bookings, 1)
	assert.Equal(t, []string{"Sound System", "LED Video Wall"}, reloaded.Bookings[0].LogisticsItems)
	require.Len(t, reloaded.Registrations, 1)
	assert.Equal(t, domain.RegistrationScheduled, reloaded.Registrations[0].Status)
	require.Len(t, reloaded.Users, 1)
	assert.False(t, reloaded.Users[0].LoggedIn)
	assert.Len(t, reloaded.Venues[0].BookingSchedule, 1)
}

func TestConsole_ReportsErrorsAndKeepsRunning(t *testing.T) {
	input := []string{
		// unknown user
		"1", "USER9999", "Secret1",
		// cancelled sign up
		"2", "0",
		"0",
	}
	var out bytes.Buffer
	console := handler.NewConsole(newServices(t, t.TempDir()), handler.NewPrompter(strings.NewReader(strings.Join(input, "\n")+"\n"), &out))

	console.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Error: "+domain.ErrInvalidCredentials.Error())
	assert.Contains(t, text, "Cancelled.")
	assert.Contains(t, text, "Goodbye.")
}
