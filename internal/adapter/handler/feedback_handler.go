package handler

import (
	"fmt"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/core/services"
)

func (c *Console) feedbackMenu() {
	for {
		switch c.p.Menu("Feedback", "Submit feedback", "My feedback", "Delete feedback", "Feedback statistics") {
		case 1:
			c.submitFeedback()
		case 2:
			c.listFeedback()
		case 3:
			c.deleteFeedback()
		case 4:
			c.feedbackStatistics()
		default:
			return
		}
	}
}

func feedbackLine(fb domain.EventFeedback) string {
	rec := "no"
	if fb.WouldRecommend {
		rec = "yes"
	}
	return fmt.Sprintf("%s | %s | %s | %s | venue %d, organization %d, logistics %d, overall %d | recommend %s",
		fb.FeedbackID, fb.BookingID, fb.EventTitle, fb.SubmissionDate,
		fb.VenueRating, fb.OrganizationRating, fb.LogisticsRating, fb.OverallRating, rec)
}

func (c *Console) submitFeedback() {
	eligible, err := c.svc.Feedback.EligibleBookings(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(eligible))
	for _, b := range eligible {
		lines = append(lines, bookingLine(b))
	}
	i, err := c.p.Pick("Booking", lines)
	if c.report(err) {
		return
	}

	req := services.SubmitFeedbackRequest{UserID: c.userID, BookingID: eligible[i].BookingID}
	for _, r := range []struct {
		label string
		dst   *int
	}{
		{"Venue rating", &req.VenueRating},
		{"Organization rating", &req.OrganizationRating},
		{"Logistics rating", &req.LogisticsRating},
		{"Overall rating", &req.OverallRating},
	} {
		if *r.dst, err = c.p.Int(r.label, domain.MinRating, domain.MaxRating); c.report(err) {
			return
		}
	}
	if req.WouldRecommend, err = c.p.Confirm("Would you recommend this venue?"); c.report(err) {
		return
	}
	for _, t := range []struct {
		label string
		dst   *string
	}{
		{"Venue comments", &req.VenueComments},
		{"Organization comments", &req.OrganizationComments},
		{"Logistics comments", &req.LogisticsComments},
		{"General comments", &req.GeneralComments},
		{"Suggestions", &req.Suggestions},
	} {
		if *t.dst, err = c.p.Line(t.label); c.report(err) {
			return
		}
	}

	fb, err := c.svc.Feedback.Submit(c.ctx, req)
	if fb == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Thank you. Feedback %s recorded.\n", fb.FeedbackID)
}

func (c *Console) listFeedback() {
	mine, err := c.svc.Feedback.ListMine(c.userID)
	if c.report(err) {
		return
	}
	lines := make([]string, 0, len(mine))
	for _, fb := range mine {
		lines = append(lines, feedbackLine(fb))
	}
	c.printList("My feedback", lines)
}

func (c *Console) deleteFeedback() {
	mine, err := c.svc.Feedback.ListMine(c.userID)
	if c.report(err) {
		return
	}
	if len(mine) == 0 {
		c.report(fmt.Errorf("feedback: %w", domain.ErrNoCandidates))
		return
	}
	lines := make([]string, 0, len(mine))
	for _, fb := range mine {
		lines = append(lines, feedbackLine(fb))
	}
	i, err := c.p.Pick("Feedback to delete", lines)
	if c.report(err) {
		return
	}

	fb, err := c.svc.Feedback.Delete(c.ctx, c.userID, mine[i].FeedbackID)
	if fb == nil && c.report(err) {
		return
	}
	c.warn(err)
	c.p.Printf("Feedback %s deleted.\n", fb.FeedbackID)
}

func (c *Console) feedbackStatistics() {
	st, err := c.svc.Feedback.Statistics(c.userID)
	if c.report(err) {
		return
	}
	c.p.Printf("\nFeedback statistics (%d submissions)\n", st.Total)
	c.p.Printf("  Venue %.1f | Organization %.1f | Logistics %.1f | Overall %.1f\n",
		st.AvgVenue, st.AvgOrganization, st.AvgLogistics, st.AvgOverall)
	c.p.Printf("  Would recommend: %d (%.1f%%)\n", st.RecommendCount, st.RecommendRate)
	for r := domain.MaxRating; r >= domain.MinRating; r-- {
		c.p.Printf("  %d stars: %d\n", r, st.OverallDistribution[r])
	}
	if st.RecentAverage > 0 {
		c.p.Printf("  Recent overall average: %.1f\n", st.RecentAverage)
	}
	c.p.Printf("  Excellent %d | Good %d | Average %d | Poor %d\n", st.Excellent, st.Good, st.Average, st.Poor)
	for _, v := range st.Venues {
		c.p.Printf("  %-12s %.1f (%d)\n", v.VenueName, v.Average, v.Count)
	}
}
