package services

import (
	"sort"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

const topExpensiveEvents = 5

type EventSummary struct {
	Registrations         int                               `json:"registrations"`
	Bookings              int                               `json:"bookings"`
	Venues                int                               `json:"venues"`
	RegistrationsByStatus map[domain.RegistrationStatus]int `json:"registrations_by_status"`
	BookingsByStatus      map[domain.BookingStatus]int      `json:"bookings_by_status"`
}

type VenueUsage struct {
	Venue    domain.Venue `json:"venue"`
	Bookings int          `json:"bookings"`
	// Share is the percentage of the user's live bookings held at this venue.
	Share float64 `json:"share"`
}

type FinancialReport struct {
	TotalBudget   float64               `json:"total_budget"`
	TotalSpent    float64               `json:"total_spent"`
	PendingCost   float64               `json:"pending_cost"`
	ConfirmedCost float64               `json:"confirmed_cost"`
	CompletedCost float64               `json:"completed_cost"`
	Collected     float64               `json:"collected"`
	Refunded      float64               `json:"refunded"`
	MostExpensive []domain.EventBooking `json:"most_expensive"`
}

type RegistrationStatistics struct {
	Registrations  int            `json:"registrations"`
	ExpectedGuests int            `json:"expected_guests"`
	Products       int            `json:"products"`
	ByManufacturer map[string]int `json:"by_manufacturer"`
}

type SearchResult struct {
	Registrations []domain.EventRegistration `json:"registrations"`
	Bookings      []domain.EventBooking      `json:"bookings"`
}

// MonitoringService builds read-only reports over one user's data.
type MonitoringService struct {
	state *State
}

func NewMonitoringService(state *State) *MonitoringService {
	return &MonitoringService{state: state}
}

func (s *MonitoringService) Summary(userID string) (*EventSummary, error) {
	regs, bookings, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	sum := &EventSummary{
		Registrations:         len(regs),
		Bookings:              len(bookings),
		Venues:                len(s.state.Venues),
		RegistrationsByStatus: make(map[domain.RegistrationStatus]int),
		BookingsByStatus:      make(map[domain.BookingStatus]int),
	}
	for _, r := range regs {
		sum.RegistrationsByStatus[r.Status]++
	}
	for _, b := range bookings {
		sum.BookingsByStatus[b.Status]++
	}
	return sum, nil
}

// VenueUtilization lists the venues holding at least one of the user's live
// bookings, in catalog order.
func (s *MonitoringService) VenueUtilization(userID string) ([]VenueUsage, error) {
	_, bookings, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	live := 0
	for _, b := range bookings {
		if b.IsLive() {
			counts[b.Venue.VenueID]++
			live++
		}
	}
	var out []VenueUsage
	for _, v := range s.state.Venues {
		n := counts[v.VenueID]
		if n == 0 {
			continue
		}
		out = append(out, VenueUsage{
			Venue:    v.Snapshot(),
			Bookings: n,
			Share:    float64(n) * 100 / float64(live),
		})
	}
	return out, nil
}

func (s *MonitoringService) FinancialReport(userID string) (*FinancialReport, error) {
	regs, bookings, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	rep := &FinancialReport{}
	for _, r := range regs {
		rep.TotalBudget += r.EstimatedBudget
	}
	mine := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		mine[b.BookingID] = true
		switch b.Status {
		case domain.BookingPending:
			rep.PendingCost += b.FinalCost
		case domain.BookingConfirmed:
			rep.ConfirmedCost += b.FinalCost
		case domain.BookingCompleted:
			rep.CompletedCost += b.FinalCost
		}
	}
	rep.TotalSpent = rep.ConfirmedCost + rep.CompletedCost

	for _, p := range s.state.Payments {
		if !mine[p.BookingID] {
			continue
		}
		switch p.Status {
		case domain.PaymentCompleted:
			rep.Collected += p.Amount
		case domain.PaymentRefunded:
			rep.Refunded += p.Amount
		}
	}

	sorted := append([]domain.EventBooking(nil), bookings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinalCost > sorted[j].FinalCost
	})
	if len(sorted) > topExpensiveEvents {
		sorted = sorted[:topExpensiveEvents]
	}
	rep.MostExpensive = sorted
	return rep, nil
}

// Upcoming returns the user's live bookings from today on, ordered by date
// and then by slot order. A positive horizon limits how many days ahead to
// look.
func (s *MonitoringService) Upcoming(userID string, horizonDays int) ([]domain.EventBooking, error) {
	_, bookings, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	today := s.state.Today()
	last := today.AddDays(horizonDays)

	var out []domain.EventBooking
	for _, b := range bookings {
		if !b.IsLive() || b.EventDate.Before(today) {
			continue
		}
		if horizonDays > 0 && last.Before(b.EventDate) {
			continue
		}
		out = append(out, b)
	}
	slots := s.state.TimeSlots
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].EventDate.Compare(out[j].EventDate); c != 0 {
			return c < 0
		}
		return slots.Index(out[i].EventTime) < slots.Index(out[j].EventTime)
	})
	return out, nil
}

func (s *MonitoringService) RegistrationStatistics(userID string) (*RegistrationStatistics, error) {
	regs, _, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	st := &RegistrationStatistics{
		Registrations:  len(regs),
		ByManufacturer: make(map[string]int),
	}
	for _, r := range regs {
		st.ExpectedGuests += r.ExpectedGuests
		st.Products += len(r.Products)
		st.ByManufacturer[r.Manufacturer]++
	}
	return st, nil
}

// Search matches term case-insensitively against IDs, titles, manufacturers,
// organizer names and venue names of the user's records.
func (s *MonitoringService) Search(userID, term string) (*SearchResult, error) {
	regs, bookings, err := s.owned(userID)
	if err != nil {
		return nil, err
	}
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return nil, &domain.InputError{Field: "search term"}
	}
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToUpper(f), term) {
				return true
			}
		}
		return false
	}

	res := &SearchResult{}
	for _, r := range regs {
		if match(r.EventID, r.EventTitle, r.Manufacturer, r.Organizer.Name) {
			res.Registrations = append(res.Registrations, r)
		}
	}
	for _, b := range bookings {
		reg := b.Registration
		if match(b.BookingID, reg.EventTitle, reg.Manufacturer, reg.Organizer.Name, b.Venue.Name) {
			res.Bookings = append(res.Bookings, b)
		}
	}
	return res, nil
}

func (s *MonitoringService) owned(userID string) ([]domain.EventRegistration, []domain.EventBooking, error) {
	if err := requireUser(userID); err != nil {
		return nil, nil, err
	}
	var regs []domain.EventRegistration
	for _, r := range s.state.Registrations {
		if r.OwnedBy(userID) {
			regs = append(regs, r)
		}
	}
	var bookings []domain.EventBooking
	for _, b := range s.state.Bookings {
		if b.OwnedBy(userID) {
			bookings = append(bookings, b)
		}
	}
	return regs, bookings, nil
}
