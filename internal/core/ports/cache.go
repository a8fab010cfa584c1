package ports

import (
	"context"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// AvailabilityCache remembers which venue IDs were free for a date and
// slot. It is advisory: the booking paths always re-validate against the
// booking list before committing.
type AvailabilityCache interface {
	GetAvailableVenues(ctx context.Context, date domain.Date, slot string) ([]string, bool, error)
	SetAvailableVenues(ctx context.Context, date domain.Date, slot string, venueIDs []string) error
	Invalidate(ctx context.Context, date domain.Date, slot string) error
}
