package flatfile

import (
	"context"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// feedbackID|bookingID|title|organizer|eventDate|venue|submittedBy|
// submissionDate|venue|organization|logistics|overall|recommend|
// venueComments|organizationComments|logisticsComments|generalComments|suggestions

func encodeFeedback(fb domain.EventFeedback) string {
	return join(
		fb.FeedbackID,
		fb.BookingID,
		fb.EventTitle,
		fb.OrganizerName,
		fb.EventDate.String(),
		fb.VenueName,
		fb.SubmittedBy,
		fb.SubmissionDate.String(),
		formatInt(fb.VenueRating),
		formatInt(fb.OrganizationRating),
		formatInt(fb.LogisticsRating),
		formatInt(fb.OverallRating),
		formatBool(fb.WouldRecommend),
		fb.VenueComments,
		fb.OrganizationComments,
		fb.LogisticsComments,
		fb.GeneralComments,
		fb.Suggestions,
	)
}

func decodeFeedback(line string) (domain.EventFeedback, error) {
	f, err := split(line, 18)
	if err != nil {
		return domain.EventFeedback{}, err
	}
	eventDate, err := domain.ParseDate(f[4])
	if err != nil {
		return domain.EventFeedback{}, err
	}
	submitted, err := domain.ParseDate(f[7])
	if err != nil {
		return domain.EventFeedback{}, err
	}

	var ratings [4]int
	for i, name := range []string{"venue rating", "organization rating", "logistics rating", "overall rating"} {
		if ratings[i], err = parseInt(name, f[8+i]); err != nil {
			return domain.EventFeedback{}, err
		}
	}

	return domain.EventFeedback{
		FeedbackID:           f[0],
		BookingID:            f[1],
		EventTitle:           f[2],
		OrganizerName:        f[3],
		EventDate:            eventDate,
		VenueName:            f[5],
		SubmittedBy:          f[6],
		SubmissionDate:       submitted,
		VenueRating:          ratings[0],
		OrganizationRating:   ratings[1],
		LogisticsRating:      ratings[2],
		OverallRating:        ratings[3],
		WouldRecommend:       parseBool(f[12]),
		VenueComments:        f[13],
		OrganizationComments: f[14],
		LogisticsComments:    f[15],
		GeneralComments:      f[16],
		Suggestions:          f[17],
	}, nil
}

func (s *Store) LoadFeedback(ctx context.Context) ([]domain.EventFeedback, error) {
	var feedback []domain.EventFeedback
	err := s.readLines(ctx, feedbackFile, func(line string) error {
		fb, err := decodeFeedback(line)
		if err != nil {
			return err
		}
		feedback = append(feedback, fb)
		return nil
	})
	return feedback, err
}

func (s *Store) SaveFeedback(ctx context.Context, feedback []domain.EventFeedback) error {
	lines := make([]string, 0, len(feedback))
	for _, fb := range feedback {
		lines = append(lines, encodeFeedback(fb))
	}
	return s.writeLines(ctx, feedbackFile, lines)
}
