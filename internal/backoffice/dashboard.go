package backoffice

import (
	"context"
	"fmt"
	"time"

	"safar/internal/aggregate"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
	"safar/internal/metrics"
	"safar/internal/query"
)

// GrowthMonths is how many calendar months the overview charts cover,
// the current one included.
const GrowthMonths = 6

type OverviewCards struct {
	Users            int64            `json:"users"`
	Customers        int64            `json:"customers"`
	Providers        int64            `json:"providers"`
	Listings         map[string]int64 `json:"listings"`
	PendingApprovals int64            `json:"pending_approvals"`
	Bookings         int64            `json:"bookings"`
	PendingBookings  int64            `json:"pending_bookings"`
	Revenue          float64          `json:"revenue"`
	AverageBooking   float64          `json:"average_booking"`
	AverageRating    float64          `json:"average_rating"`
	FlaggedReviews   int64            `json:"flagged_reviews"`
	OpenTickets      int64            `json:"open_tickets"`
	UrgentTickets    int64            `json:"urgent_tickets"`
}

type MonthPoint struct {
	Month       string  `json:"month"` // YYYY-MM
	Bookings    int64   `json:"bookings"`
	Revenue     float64 `json:"revenue"`
	NewUsers    int64   `json:"new_users"`
	NewListings int64   `json:"new_listings"`
}

// Growth compares the current month with the previous one, in percent.
type Growth struct {
	Bookings    float64 `json:"bookings"`
	Revenue     float64 `json:"revenue"`
	NewUsers    float64 `json:"new_users"`
	NewListings float64 `json:"new_listings"`
}

type Overview struct {
	Cards       OverviewCards `json:"cards"`
	Months      []MonthPoint  `json:"months"`
	Growth      Growth        `json:"growth"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// GrowthRate is the percent change from last to this. A rise from zero
// counts as 100 and no activity in either month as 0.
func GrowthRate(last, this float64) float64 {
	switch {
	case last == 0 && this == 0:
		return 0
	case last == 0:
		return 100
	}
	return metrics.Round2((this - last) / last * 100)
}

// monthStarts returns the first instant of each of the n months ending with
// the month of now, oldest first, plus the start of the following month.
func monthStarts(now time.Time, n int) []time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n+1)
	for i := 0; i <= n; i++ {
		out[i] = first.AddDate(0, i-n+1, 0)
	}
	return out
}

func between(field string, from, to time.Time) query.Predicate {
	return query.Conj(query.Gte(field, from), query.Lt(field, to))
}

// Overview collects every dashboard card and the monthly series in one
// fan-out.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	r := s.store.Repos()
	now := s.now()

	c := aggregate.New().
		Count("users", r.Users, nil).
		Count("customers", r.Users, query.Eq("role", users.RoleCustomer)).
		Count("providers", r.Users, query.Eq("role", users.RoleProvider)).
		Count("pending_approvals", r.Listings, query.Eq("approval_status", listings.StatusPending)).
		Count("bookings", r.Bookings, nil).
		Count("pending_bookings", r.Bookings, query.Eq("status", bookings.StatusPending)).
		Sum("revenue", r.Bookings, "total_price", query.Eq("status", bookings.StatusCompleted)).
		Avg("average_booking", r.Bookings, "total_price", query.In("status", bookings.StatusConfirmed, bookings.StatusCompleted)).
		Avg("average_rating", r.Reviews, "rating", query.Eq("is_removed", false)).
		Count("flagged_reviews", r.Reviews, query.Conj(query.Eq("is_flagged", true), query.Eq("is_removed", false))).
		Count("open_tickets", r.Tickets, openTickets).
		Count("urgent_tickets", r.Tickets, query.Conj(openTickets, query.Eq("priority", tickets.PriorityHigh)))
	for _, k := range listings.Kinds {
		c.Count("listings_"+k, r.Listings, query.Eq("kind", k))
	}

	starts := monthStarts(now, GrowthMonths)
	for i := 0; i < GrowthMonths; i++ {
		from, to := starts[i], starts[i+1]
		m := fmt.Sprintf("m%d_", i)
		c.Count(m+"bookings", r.Bookings, between("created_at", from, to))
		c.Sum(m+"revenue", r.Bookings, "total_price",
			query.Conj(between("created_at", from, to), query.Eq("status", bookings.StatusCompleted)))
		c.Count(m+"users", r.Users, between("created_at", from, to))
		c.Count(m+"listings", r.Listings, between("created_at", from, to))
	}

	res, err := c.Run(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}

	kinds := make(map[string]int64, len(listings.Kinds))
	for _, k := range listings.Kinds {
		kinds[k] = res.Int("listings_" + k)
	}

	months := make([]MonthPoint, GrowthMonths)
	for i := range months {
		m := fmt.Sprintf("m%d_", i)
		months[i] = MonthPoint{
			Month:       starts[i].Format("2006-01"),
			Bookings:    res.Int(m + "bookings"),
			Revenue:     metrics.Round2(res.Float(m + "revenue")),
			NewUsers:    res.Int(m + "users"),
			NewListings: res.Int(m + "listings"),
		}
	}
	last, this := months[GrowthMonths-2], months[GrowthMonths-1]

	return Overview{
		Cards: OverviewCards{
			Users:            res.Int("users"),
			Customers:        res.Int("customers"),
			Providers:        res.Int("providers"),
			Listings:         kinds,
			PendingApprovals: res.Int("pending_approvals"),
			Bookings:         res.Int("bookings"),
			PendingBookings:  res.Int("pending_bookings"),
			Revenue:          metrics.Round2(res.Float("revenue")),
			AverageBooking:   metrics.Round2(res.Float("average_booking")),
			AverageRating:    metrics.Round2(res.Float("average_rating")),
			FlaggedReviews:   res.Int("flagged_reviews"),
			OpenTickets:      res.Int("open_tickets"),
			UrgentTickets:    res.Int("urgent_tickets"),
		},
		Months: months,
		Growth: Growth{
			Bookings:    GrowthRate(float64(last.Bookings), float64(this.Bookings)),
			Revenue:     GrowthRate(last.Revenue, this.Revenue),
			NewUsers:    GrowthRate(float64(last.NewUsers), float64(this.NewUsers)),
			NewListings: GrowthRate(float64(last.NewListings), float64(this.NewListings)),
		},
		GeneratedAt: now.UTC(),
	}, nil
}
