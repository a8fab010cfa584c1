package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/launch_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// Set LAUNCH_TEST_DATABASE_URL to a disposable database to run these.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("LAUNCH_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LAUNCH_TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db))
	return db
}

func TestRepositories_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repos := postgres.NewRepositories(db)

	venues := domain.SampleVenues()
	venues[1].BookingSchedule = []domain.TimeSlot{
		{Date: domain.NewDate(2025, 10, 1), Time: "Evening", EventID: "BKG2001", IsBooked: true},
	}

	reg := domain.EventRegistration{
		EventID:         "EVT1001",
		Organizer:       domain.OrganizerInfo{UserID: "USER1001", Name: "Aisha Karim", Contact: "0123456789", Email: "aisha@nova.example", Position: "Lead"},
		EventTitle:      "Nova X Launch",
		Manufacturer:    "Nova Mobile",
		Description:     "Flagship reveal",
		ExpectedGuests:  400,
		EstimatedBudget: 15000,
		Products:        []domain.Product{{Name: "Nova X", Model: "NX-1", Price: 3999.99}},
		Status:          domain.RegistrationScheduled,
	}

	snapshot := reg
	snapshot.Status = domain.RegistrationUnscheduled
	bookings := []domain.EventBooking{{
		BookingID:      "BKG2001",
		Registration:   snapshot,
		EventDate:      domain.NewDate(2025, 10, 1),
		EventTime:      "Evening",
		Venue:          domain.SampleVenues()[1],
		Status:         domain.BookingPending,
		FinalCost:      4800,
		LogisticsItems: []string{"Sound System"},
		LogisticsCost:  800,
	}}

	payments := []domain.Payment{{
		PaymentID: "PAY1001", BookingID: "BKG2001", Amount: 4320, PaymentDate: domain.NewDate(2025, 9, 2),
		Method: domain.MethodDebitCard, Status: domain.PaymentCompleted, TransactionReference: "TXN0A1B2C3D",
		CardLast4: "4242", CardHolderName: "AISHA KARIM",
	}}

	require.NoError(t, repos.Venues.SaveVenues(ctx, venues))
	require.NoError(t, repos.Registrations.SaveRegistrations(ctx, []domain.EventRegistration{reg}))
	require.NoError(t, repos.Bookings.SaveBookings(ctx, bookings))
	require.NoError(t, repos.Payments.SavePayments(ctx, payments))

	gotVenues, err := repos.Venues.LoadVenues(ctx)
	require.NoError(t, err)
	assert.Equal(t, venues, gotVenues)

	gotRegs, err := repos.Registrations.LoadRegistrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.EventRegistration{reg}, gotRegs)

	gotBookings, err := repos.Bookings.LoadBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, bookings, gotBookings)

	gotPayments, err := repos.Payments.LoadPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, payments, gotPayments)

	require.NoError(t, repos.Bookings.SaveBookings(ctx, nil))
	gotBookings, err = repos.Bookings.LoadBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotBookings)
}
