package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srgjo27/launch_booking/internal/adapter/repository/flatfile"
	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*flatfile.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := flatfile.NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func writeFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func sampleRegistration() domain.EventRegistration {
	return domain.EventRegistration{
		EventID: "EVT1001",
		Organizer: domain.OrganizerInfo{
			UserID:   "USER1001",
			Name:     "Aisha Karim",
			Contact:  "0123456789",
			Email:    "aisha@nova.example",
			Position: "Marketing Lead",
		},
		EventTitle:      "Nova X Launch",
		Manufacturer:    "Nova Mobile",
		Description:     "Flagship reveal",
		ExpectedGuests:  250,
		EstimatedBudget: 12000.5,
		Products: []domain.Product{
			{Name: "Nova X", Model: "NX-1", Price: 3999.99},
			{Name: "Nova X Pro", Model: "NX-1P", Price: 4999},
		},
		Status: domain.RegistrationScheduled,
	}
}

func sampleBooking() domain.EventBooking {
	reg := sampleRegistration()
	reg.Status = domain.RegistrationUnscheduled
	return domain.EventBooking{
		BookingID:      "BKG2001",
		Registration:   reg,
		EventDate:      domain.NewDate(2025, 10, 1),
		EventTime:      "Morning",
		Venue:          domain.SampleVenues()[0],
		Status:         domain.BookingConfirmed,
		FinalCost:      3900,
		LogisticsItems: []string{"Sound System", "Stage Lighting"},
		LogisticsCost:  1400,
	}
}

func TestStore_MissingFilesLoadEmpty(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	users, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	venues, err := store.LoadVenues(ctx)
	require.NoError(t, err)
	assert.Empty(t, venues)

	bookings, err := store.LoadBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	hashed, err := domain.NewCredential("Secret1")
	require.NoError(t, err)
	users := []domain.User{
		{UserID: "USER1001", Name: "Aisha Karim", Age: 34, Contact: "0123456789", Email: "aisha@nova.example", Manufacturer: "Nova Mobile", Position: "Marketing Lead", Credential: hashed, LoggedIn: true},
		{UserID: "USER1002", Name: "Ben Ong", Age: 41, Contact: "0198765432", Email: "ben@aurora.example", Manufacturer: "Aurora", Position: "Director", Credential: domain.CredentialFromStored("plain123")},
	}

	venues := domain.SampleVenues()
	venues[0].BookingSchedule = []domain.TimeSlot{
		{Date: domain.NewDate(2025, 10, 1), Time: "Morning", EventID: "BKG2001", IsBooked: true},
	}

	regs := []domain.EventRegistration{sampleRegistration()}

	plain := sampleBooking()
	plain.BookingID = "BKG2002"
	plain.LogisticsItems = nil
	plain.LogisticsCost = 0
	bookings := []domain.EventBooking{sampleBooking(), plain}

	payments := []domain.Payment{{
		PaymentID:            "PAY1001",
		BookingID:            "BKG2001",
		Amount:               3510,
		PaymentDate:          domain.NewDate(2025, 9, 2),
		Method:               domain.MethodCreditCard,
		Status:               domain.PaymentCompleted,
		TransactionReference: "TXN0A1B2C3D",
		CardLast4:            "4242",
		CardHolderName:       "AISHA KARIM",
	}}

	feedback := []domain.EventFeedback{{
		FeedbackID:         "FB1001",
		BookingID:          "BKG2001",
		EventTitle:         "Nova X Launch",
		OrganizerName:      "Aisha Karim",
		EventDate:          domain.NewDate(2025, 10, 1),
		VenueName:          "Hall A",
		SubmittedBy:        "USER1001",
		SubmissionDate:     domain.NewDate(2025, 10, 2),
		VenueRating:        5,
		OrganizationRating: 4,
		LogisticsRating:    3,
		OverallRating:      4,
		WouldRecommend:     true,
		VenueComments:      "Great acoustics",
		GeneralComments:    "Smooth day",
	}}

	require.NoError(t, store.SaveUsers(ctx, users))
	require.NoError(t, store.SaveVenues(ctx, venues))
	require.NoError(t, store.SaveRegistrations(ctx, regs))
	require.NoError(t, store.SaveBookings(ctx, bookings))
	require.NoError(t, store.SavePayments(ctx, payments))
	require.NoError(t, store.SaveFeedback(ctx, feedback))

	gotUsers, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, gotUsers)
	assert.True(t, gotUsers[0].Credential.Matches("Secret1"))
	assert.True(t, gotUsers[1].Credential.IsLegacy())

	gotVenues, err := store.LoadVenues(ctx)
	require.NoError(t, err)
	assert.Equal(t, venues, gotVenues)

	gotRegs, err := store.LoadRegistrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, regs, gotRegs)

	gotBookings, err := store.LoadBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, bookings, gotBookings)

	gotPayments, err := store.LoadPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, payments, gotPayments)

	gotFeedback, err := store.LoadFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, feedback, gotFeedback)
}

func TestStore_SaveReplacesFile(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRegistrations(ctx, []domain.EventRegistration{sampleRegistration()}))
	require.NoError(t, store.SaveRegistrations(ctx, nil))

	raw, err := os.ReadFile(filepath.Join(dir, "registrations.txt"))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStore_FileFormats(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRegistrations(ctx, []domain.EventRegistration{sampleRegistration()}))
	require.NoError(t, store.SavePayments(ctx, []domain.Payment{{
		PaymentID: "PAY1001", BookingID: "BKG2001", Amount: 3900, PaymentDate: domain.NewDate(2025, 9, 2),
		Method: domain.MethodCash, Status: domain.PaymentCompleted, TransactionReference: "TXN0A1B2C3D",
	}}))

	regs, err := os.ReadFile(filepath.Join(dir, "registrations.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"EVT1001|Nova Mobile|Nova X Launch|2|Nova X,NX-1,3999.99;Nova X Pro,NX-1P,4999|Flagship reveal|250|12000.5|SCHEDULED|USER1001|Aisha Karim|0123456789|aisha@nova.example|Marketing Lead\n",
		string(regs))

	payments, err := os.ReadFile(filepath.Join(dir, "payments.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PAY1001|BKG2001|3900|2/9/2025|Cash|Completed|TXN0A1B2C3D||\n", string(payments))
}

func TestStore_LoadsLegacyBookingLine(t *testing.T) {
	store, dir := newStore(t)
	writeFile(t, dir, "bookings.txt",
		"BKG2001|EVT1001|Nova X Launch|Nova Mobile|Flagship reveal|250|12000|UNSCHEDULED|USER1001|Aisha Karim|0123456789|aisha@nova.example|Marketing Lead|2025-10-01|Morning|V001|Hall A|Level 1, Convention Center|300|2500|Ahmad Rahman|03-1234-5678|Pending|2500",
	)

	bookings, err := store.LoadBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	b := bookings[0]
	assert.Equal(t, "BKG2001", b.BookingID)
	assert.Equal(t, "EVT1001", b.EventID())
	assert.Equal(t, domain.NewDate(2025, 10, 1), b.EventDate)
	assert.Equal(t, "V001", b.Venue.VenueID)
	assert.Equal(t, 300, b.Venue.Capacity)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 2500.0, b.FinalCost)
	assert.Zero(t, b.LogisticsCost)
	assert.Empty(t, b.LogisticsItems)
	assert.Empty(t, b.Registration.Products)
}

func TestStore_SkipsMalformedLines(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	writeFile(t, dir, "userInfo.txt",
		"USER1001|Aisha Karim|34|Nova Mobile|Lead|0123456789|aisha@nova.example|Secret1|0",
		"USER1002|Ben Ong|forty|Aurora|Director|0198765432|ben@aurora.example|Secret1|0",
		"",
		"USER1003|too|few|fields",
		"USER1004|Chen Li|29|Orbit|Engineer|0171234567|chen@orbit.example|Secret1|1",
	)
	writeFile(t, dir, "payments.txt",
		"PAY1001|BKG2001|3900|2/9/2025|Cash|Completed|TXN0A1B2C3D||",
		"PAY1002|BKG2002|3900|31/2/2025|Cash|Completed|TXN0A1B2C3E||",
		"PAY1003|BKG2003|abc|2/9/2025|Cash|Completed|TXN0A1B2C3F||",
	)

	users, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "USER1001", users[0].UserID)
	assert.Equal(t, "USER1004", users[1].UserID)
	assert.True(t, users[1].LoggedIn)

	payments, err := store.LoadPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "PAY1001", payments[0].PaymentID)
}

func TestStore_LoadVenueBlocks(t *testing.T) {
	store, dir := newStore(t)
	writeFile(t, dir, "venues.txt",
		"SLOT|2025-10-01|Morning|BKG0001|1",
		"V001|Hall A|Level 1|300|2500|Ahmad Rahman|03-1234-5678",
		"SLOT|2025-10-01|Morning|BKG2001|1",
		"SLOT|2025-13-01|Evening|BKG2002|1",
		"SLOT|2025-10-02|Evening|BKG2003|0",
		"END_VENUE",
		"SLOT|2025-10-03|Morning|BKG2004|1",
		"V002|Hall B|Level 2|big|4000|Siti|03-2345-6789",
		"SLOT|2025-10-04|Morning|BKG2005|1",
		"END_VENUE",
		"V003|Hall C|Level 3|800|6500.75|Lee Wei Ming|03-3456-7890",
		"END_VENUE",
	)

	venues, err := store.LoadVenues(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 2)

	assert.Equal(t, "V001", venues[0].VenueID)
	assert.Equal(t, []domain.TimeSlot{
		{Date: domain.NewDate(2025, 10, 1), Time: "Morning", EventID: "BKG2001", IsBooked: true},
		{Date: domain.NewDate(2025, 10, 2), Time: "Evening", EventID: "BKG2003", IsBooked: false},
	}, venues[0].BookingSchedule)

	assert.Equal(t, "V003", venues[1].VenueID)
	assert.Equal(t, 6500.75, venues[1].RentalCost)
	assert.Empty(t, venues[1].BookingSchedule)
}

func TestStore_PaymentKeepsOnlyLastFourDigits(t *testing.T) {
	store, dir := newStore(t)
	writeFile(t, dir, "payments.txt",
		"PAY1001|BKG2001|3900|2/9/2025|Credit Card|Completed|TXN0A1B2C3D|4111 1111 1111 1234|AISHA KARIM",
	)

	payments, err := store.LoadPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "1234", payments[0].CardLast4)
	assert.Equal(t, domain.NewDate(2025, 9, 2), payments[0].PaymentDate)
}
