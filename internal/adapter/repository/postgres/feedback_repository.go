package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) LoadFeedback(ctx context.Context) ([]domain.EventFeedback, error) {
	query := `
	SELECT feedback_id, booking_id, event_title, organizer, event_date, venue_name, submitted_by,
		submitted_on, venue_rating, organization_rating, logistics_rating, overall_rating,
		would_recommend, venue_comments, organization_comments, logistics_comments,
		general_comments, suggestions
	FROM feedback
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var feedback []domain.EventFeedback
	for rows.Next() {
		var fb domain.EventFeedback
		var eventDate, submittedOn time.Time
		err := rows.Scan(
			&fb.FeedbackID,
			&fb.BookingID,
			&fb.EventTitle,
			&fb.OrganizerName,
			&eventDate,
			&fb.VenueName,
			&fb.SubmittedBy,
			&submittedOn,
			&fb.VenueRating,
			&fb.OrganizationRating,
			&fb.LogisticsRating,
			&fb.OverallRating,
			&fb.WouldRecommend,
			&fb.VenueComments,
			&fb.OrganizationComments,
			&fb.LogisticsComments,
			&fb.GeneralComments,
			&fb.Suggestions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		fb.EventDate = domain.DateOf(eventDate)
		fb.SubmissionDate = domain.DateOf(submittedOn)
		feedback = append(feedback, fb)
	}

	return feedback, rows.Err()
}

func (r *FeedbackRepository) SaveFeedback(ctx context.Context, feedback []domain.EventFeedback) error {
	query := `
	INSERT INTO feedback (feedback_id, position, booking_id, event_title, organizer, event_date,
		venue_name, submitted_by, submitted_on, venue_rating, organization_rating, logistics_rating,
		overall_rating, would_recommend, venue_comments, organization_comments, logistics_comments,
		general_comments, suggestions)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "feedback"); err != nil {
			return err
		}
		return insertAll(ctx, tx, "feedback", query, len(feedback), func(i int) []any {
			fb := feedback[i]
			return []any{
				fb.FeedbackID, i, fb.BookingID, fb.EventTitle, fb.OrganizerName, sqlDate(fb.EventDate),
				fb.VenueName, fb.SubmittedBy, sqlDate(fb.SubmissionDate), fb.VenueRating,
				fb.OrganizationRating, fb.LogisticsRating, fb.OverallRating, fb.WouldRecommend,
				fb.VenueComments, fb.OrganizationComments, fb.LogisticsComments,
				fb.GeneralComments, fb.Suggestions,
			}
		})
	})
}
