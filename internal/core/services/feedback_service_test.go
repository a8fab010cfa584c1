package services_test

import (
	"testing"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackRequest(userID, bookingID string, overall int) services.SubmitFeedbackRequest {
	return services.SubmitFeedbackRequest{
		UserID:             userID,
		BookingID:          bookingID,
		VenueRating:        4,
		OrganizationRating: 5,
		LogisticsRating:    3,
		OverallRating:      overall,
		WouldRecommend:     true,
		GeneralComments:    "Smooth | well run\nevent",
	}
}

func feedbackSeed() seed {
	s := twoOrganizers()
	venues := domain.SampleVenues()
	s.bookings = []domain.EventBooking{
		liveBooking("BKG2001", s.regs[0], venues[0], launchDate, "Morning", domain.BookingPending),
		liveBooking("BKG2002", s.regs[0], venues[1], launchDate, "Evening", domain.BookingConfirmed),
		liveBooking("BKG2003", s.regs[0], venues[2], launchDate.AddDays(2), "Evening", domain.BookingCompleted),
	}
	return s
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t, feedbackSeed())

	eligible, err := f.feedback.EligibleBookings("USER1001")
	require.NoError(t, err)
	assert.Len(t, eligible, 2)

	fb, err := f.feedback.Submit(f.ctx, feedbackRequest("user1001", "BKG2002", 5))
	require.NoError(t, err)
	assert.Equal(t, "FB1001", fb.FeedbackID)
	assert.Equal(t, "USER1001", fb.SubmittedBy)
	assert.Equal(t, "Hall B", fb.VenueName)
	assert.Equal(t, "Launch EVT1001", fb.EventTitle)
	assert.Equal(t, domain.NewDate(2025, 9, 1), fb.SubmissionDate)
	assert.Equal(t, "Smooth / well run event", fb.GeneralComments)

	_, err = f.feedback.Submit(f.ctx, feedbackRequest("USER1001", "BKG2002", 4))
	assert.ErrorIs(t, err, domain.ErrDuplicateFeedback)
	assert.Len(t, f.state.Feedback, 1)
}

func TestSubmitFeedback_Rejections(t *testing.T) {
	f := newFixture(t, feedbackSeed())

	_, err := f.feedback.Submit(f.ctx, feedbackRequest("USER1001", "BKG2001", 5))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.feedback.Submit(f.ctx, feedbackRequest("USER1001", "BKG2003", 6))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.feedback.Submit(f.ctx, feedbackRequest("USER1002", "BKG2003", 5))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, f.state.Feedback)
}

func TestDeleteFeedback(t *testing.T) {
	s := feedbackSeed()
	s.feedback = []domain.EventFeedback{
		{FeedbackID: "FB1001", BookingID: "BKG2002", SubmittedBy: "USER1001", OverallRating: 4},
		{FeedbackID: "FB1002", BookingID: "BKG2003", SubmittedBy: "USER1002", OverallRating: 2},
	}
	f := newFixture(t, s)

	_, err := f.feedback.Delete(f.ctx, "USER1001", "FB1002")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.feedback.Delete(f.ctx, "USER1001", "FB9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := f.feedback.Delete(f.ctx, "USER1001", "fb1001")
	require.NoError(t, err)
	assert.Equal(t, "FB1001", deleted.FeedbackID)
	require.Len(t, f.state.Feedback, 1)
	assert.Equal(t, "FB1002", f.state.Feedback[0].FeedbackID)

	mine, err := f.feedback.ListMine("USER1001")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestFeedbackStatistics(t *testing.T) {
	s := feedbackSeed()
	s.feedback = []domain.EventFeedback{
		{FeedbackID: "FB1001", SubmittedBy: "USER1001", VenueName: "Hall A", VenueRating: 2, OrganizationRating: 4, LogisticsRating: 4, OverallRating: 5, WouldRecommend: true},
		{FeedbackID: "FB1002", SubmittedBy: "USER1001", VenueName: "Hall B", VenueRating: 5, OrganizationRating: 4, LogisticsRating: 2, OverallRating: 4},
		{FeedbackID: "FB1003", SubmittedBy: "USER1001", VenueName: "Hall A", VenueRating: 4, OrganizationRating: 4, LogisticsRating: 3, OverallRating: 3, WouldRecommend: true},
		{FeedbackID: "FB1004", SubmittedBy: "USER1001", VenueName: "Hall B", VenueRating: 3, OrganizationRating: 4, LogisticsRating: 3, OverallRating: 2, WouldRecommend: true},
		{FeedbackID: "FB1005", SubmittedBy: "USER1002", VenueName: "Hall C", VenueRating: 1, OrganizationRating: 1, LogisticsRating: 1, OverallRating: 1},
	}
	f := newFixture(t, s)

	stats, err := f.feedback.Statistics("USER1001")

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 3.5, stats.AvgVenue, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgOrganization, 1e-9)
	assert.InDelta(t, 3.0, stats.AvgLogistics, 1e-9)
	assert.InDelta(t, 3.5, stats.AvgOverall, 1e-9)
	assert.Equal(t, 3, stats.RecommendCount)
	assert.InDelta(t, 75.0, stats.RecommendRate, 1e-9)
	assert.Equal(t, [domain.MaxRating + 1]int{0, 0, 1, 1, 1, 1}, stats.OverallDistribution)
	assert.InDelta(t, 3.5, stats.RecentAverage, 1e-9)
	assert.Equal(t, []services.VenueRating{
		{VenueName: "Hall B", Average: 4, Count: 2},
		{VenueName: "Hall A", Average: 3, Count: 2},
	}, stats.Venues)
	assert.Equal(t, 1, stats.Excellent)
	assert.Equal(t, 1, stats.Good)
	assert.Equal(t, 1, stats.Average)
	assert.Equal(t, 1, stats.Poor)
}
