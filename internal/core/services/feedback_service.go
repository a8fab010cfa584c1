package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

const recentFeedbackWindow = 5

type SubmitFeedbackRequest struct {
	UserID               string `json:"user_id"`
	BookingID            string `json:"booking_id"`
	VenueRating          int    `json:"venue_rating"`
	OrganizationRating   int    `json:"organization_rating"`
	LogisticsRating      int    `json:"logistics_rating"`
	OverallRating        int    `json:"overall_rating"`
	WouldRecommend       bool   `json:"would_recommend"`
	VenueComments        string `json:"venue_comments"`
	OrganizationComments string `json:"organization_comments"`
	LogisticsComments    string `json:"logistics_comments"`
	GeneralComments      string `json:"general_comments"`
	Suggestions          string `json:"suggestions"`
}

type VenueRating struct {
	VenueName string  `json:"venue_name"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}

type FeedbackStatistics struct {
	Total               int                       `json:"total"`
	AvgVenue            float64                   `json:"avg_venue"`
	AvgOrganization     float64                   `json:"avg_organization"`
	AvgLogistics        float64                   `json:"avg_logistics"`
	AvgOverall          float64                   `json:"avg_overall"`
	RecommendCount      int                       `json:"recommend_count"`
	RecommendRate       float64                   `json:"recommend_rate"`
	OverallDistribution [domain.MaxRating + 1]int `json:"overall_distribution"`
	// RecentAverage covers the last few submissions and is only set once
	// there are at least three.
	RecentAverage float64       `json:"recent_average"`
	Venues        []VenueRating `json:"venues"`

	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

type FeedbackService struct {
	state *State
}

func NewFeedbackService(state *State) *FeedbackService {
	return &FeedbackService{state: state}
}

// EligibleBookings lists the user's Confirmed or Completed bookings.
func (s *FeedbackService) EligibleBookings(userID string) ([]domain.EventBooking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.EventBooking
	for _, b := range s.state.Bookings {
		if b.OwnedBy(userID) && feedbackAllowed(b.Status) {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("confirmed or completed bookings: %w", domain.ErrNoCandidates)
	}
	return out, nil
}

func (s *FeedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest) (*domain.EventFeedback, error) {
	bi, err := s.state.ownedBooking(req.UserID, req.BookingID)
	if err != nil {
		return nil, err
	}
	b := s.state.Bookings[bi]
	if !feedbackAllowed(b.Status) {
		return nil, fmt.Errorf("feedback for booking in status %s: %w", b.Status, domain.ErrInvalidState)
	}
	if existing, ok := s.find(b.BookingID, req.UserID); ok {
		return nil, fmt.Errorf("%s: %w", existing.FeedbackID, domain.ErrDuplicateFeedback)
	}

	ratings := []struct {
		field string
		value int
	}{
		{"venue rating", req.VenueRating},
		{"organization rating", req.OrganizationRating},
		{"logistics rating", req.LogisticsRating},
		{"overall rating", req.OverallRating},
	}
	for _, r := range ratings {
		if !domain.ValidRating(r.value) {
			return nil, &domain.InputError{Field: r.field, Value: fmt.Sprint(r.value)}
		}
	}

	fb := domain.EventFeedback{
		FeedbackID:           domain.NextFeedbackID(s.state.Feedback),
		BookingID:            b.BookingID,
		EventTitle:           b.Registration.EventTitle,
		OrganizerName:        b.Registration.Organizer.Name,
		EventDate:            b.EventDate,
		VenueName:            b.Venue.Name,
		SubmittedBy:          domain.NormalizeUserID(req.UserID),
		SubmissionDate:       s.state.Today(),
		VenueRating:          req.VenueRating,
		OrganizationRating:   req.OrganizationRating,
		LogisticsRating:      req.LogisticsRating,
		OverallRating:        req.OverallRating,
		WouldRecommend:       req.WouldRecommend,
		VenueComments:        cleanComment(req.VenueComments),
		OrganizationComments: cleanComment(req.OrganizationComments),
		LogisticsComments:    cleanComment(req.LogisticsComments),
		GeneralComments:      cleanComment(req.GeneralComments),
		Suggestions:          cleanComment(req.Suggestions),
	}
	s.state.Feedback = append(s.state.Feedback, fb)

	logger.WithContext(ctx).Info("feedback submitted",
		"feedback_id", fb.FeedbackID,
		"booking_id", fb.BookingID,
		"overall", fb.OverallRating)

	return &fb, s.state.SaveFeedback(ctx)
}

// ListMine returns the feedback submitted by userID.
func (s *FeedbackService) ListMine(userID string) ([]domain.EventFeedback, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var out []domain.EventFeedback
	for _, f := range s.state.Feedback {
		if domain.SameUser(f.SubmittedBy, userID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FeedbackService) Delete(ctx context.Context, userID, feedbackID string) (*domain.EventFeedback, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	id := domain.NormalizeID(feedbackID)
	for i, f := range s.state.Feedback {
		if f.FeedbackID != id {
			continue
		}
		if !domain.SameUser(f.SubmittedBy, userID) {
			return nil, fmt.Errorf("feedback %s: %w", id, domain.ErrForbidden)
		}
		s.state.Feedback = append(s.state.Feedback[:i], s.state.Feedback[i+1:]...)
		logger.WithContext(ctx).Info("feedback deleted", "feedback_id", id)
		return &f, s.state.SaveFeedback(ctx)
	}
	return nil, fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
}

func (s *FeedbackService) Statistics(userID string) (*FeedbackStatistics, error) {
	mine, err := s.ListMine(userID)
	if err != nil {
		return nil, err
	}
	stats := &FeedbackStatistics{Total: len(mine)}
	if len(mine) == 0 {
		return stats, nil
	}

	type venueAcc struct{ sum, n int }
	venues := make(map[string]*venueAcc)
	var venue, org, logi, overall int
	for _, f := range mine {
		venue += f.VenueRating
		org += f.OrganizationRating
		logi += f.LogisticsRating
		overall += f.OverallRating
		if f.WouldRecommend {
			stats.RecommendCount++
		}
		if domain.ValidRating(f.OverallRating) {
			stats.OverallDistribution[f.OverallRating]++
		}
		switch {
		case f.OverallRating >= 5:
			stats.Excellent++
		case f.OverallRating == 4:
			stats.Good++
		case f.OverallRating == 3:
			stats.Average++
		default:
			stats.Poor++
		}
		acc, ok := venues[f.VenueName]
		if !ok {
			acc = &venueAcc{}
			venues[f.VenueName] = acc
		}
		acc.sum += f.VenueRating
		acc.n++
	}

	n := float64(len(mine))
	stats.AvgVenue = float64(venue) / n
	stats.AvgOrganization = float64(org) / n
	stats.AvgLogistics = float64(logi) / n
	stats.AvgOverall = float64(overall) / n
	stats.RecommendRate = float64(stats.RecommendCount) * 100 / n

	if len(mine) >= 3 {
		recent := mine[max(0, len(mine)-recentFeedbackWindow):]
		sum := 0
		for _, f := range recent {
			sum += f.OverallRating
		}
		stats.RecentAverage = float64(sum) / float64(len(recent))
	}

	for name, acc := range venues {
		stats.Venues = append(stats.Venues, VenueRating{
			VenueName: name,
			Average:   float64(acc.sum) / float64(acc.n),
			Count:     acc.n,
		})
	}
	sort.Slice(stats.Venues, func(i, j int) bool {
		if stats.Venues[i].Average != stats.Venues[j].Average {
			return stats.Venues[i].Average > stats.Venues[j].Average
		}
		return stats.Venues[i].VenueName < stats.Venues[j].VenueName
	})
	return stats, nil
}

func (s *FeedbackService) find(bookingID, userID string) (domain.EventFeedback, bool) {
	for _, f := range s.state.Feedback {
		if f.BookingID == bookingID && domain.SameUser(f.SubmittedBy, userID) {
			return f, true
		}
	}
	return domain.EventFeedback{}, false
}

func feedbackAllowed(st domain.BookingStatus) bool {
	return st == domain.BookingConfirmed || st == domain.BookingCompleted
}

// cleanComment keeps free text on one line and free of the field separator.
func cleanComment(s string) string {
	s = strings.NewReplacer("|", "/", "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
