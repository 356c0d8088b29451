package backoffice

import (
	"context"
	"net/url"

	"safar/internal/aggregate"
	"safar/internal/command"
	"safar/internal/domain/bookings"
	"safar/internal/fetch"
	"safar/internal/metrics"
	"safar/internal/query"
)

type BookingRow struct {
	bookings.Booking
	Nights           int   `json:"nights"`
	CustomerBookings int64 `json:"customer_bookings"`
}

type BookingSummary struct {
	Counts       StatusCounts `json:"counts"`
	Revenue      float64      `json:"revenue"`
	AverageValue float64      `json:"average_value"`
}

type BookingsView struct {
	ListMeta
	Summary BookingSummary `json:"summary"`
	Rows    []BookingRow   `json:"rows"`
}

func (s *Service) bookingQuery() listQuery[bookings.Booking] {
	return listQuery[bookings.Booking]{
		source:         s.store.Repos().Bookings,
		schema:         bookings.Schema,
		sorts:          bookings.Sorts,
		summaryIgnores: []string{"status"},
	}
}

// Bookings lists bookings. The status counts follow every filter except
// status itself.
func (s *Service) Bookings(ctx context.Context, q url.Values) (BookingsView, error) {
	src := s.store.Repos().Bookings
	page, sum, meta, err := s.bookingQuery().run(ctx, q, func(c *aggregate.Collector) {
		countStatuses(c, src, "status", bookings.Statuses)
		c.Sum("revenue", src, "total_price", query.Eq("status", bookings.StatusCompleted))
		c.Avg("average_value", src, "total_price", query.In("status", bookings.StatusConfirmed, bookings.StatusCompleted))
	})
	if err != nil {
		return BookingsView{}, err
	}

	rows, err := s.bookingRows(ctx, page)
	if err != nil {
		return BookingsView{}, err
	}

	return BookingsView{
		ListMeta: meta,
		Summary: BookingSummary{
			Counts:       statusCounts(sum, bookings.Statuses),
			Revenue:      metrics.Round2(sum.Float("revenue")),
			AverageValue: metrics.Round2(sum.Float("average_value")),
		},
		Rows: rows,
	}, nil
}

func (s *Service) bookingRows(ctx context.Context, page fetch.Page[bookings.Booking]) ([]BookingRow, error) {
	userIDs := make([]int64, 0, len(page.Rows))
	seen := make(map[int64]bool)
	for _, b := range page.Rows {
		if !seen[b.UserID] {
			seen[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}
	perUser, err := metrics.BookingsPerUser(ctx, s.store.Repos().Bookings, userIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]BookingRow, len(page.Rows))
	for i, b := range page.Rows {
		rows[i] = BookingRow{Booking: b, Nights: b.Nights(), CustomerBookings: perUser[b.UserID]}
	}
	return rows, nil
}

type BookingDetail struct {
	bookings.Booking
	Nights           int      `json:"nights"`
	CustomerBookings int64    `json:"customer_bookings"`
	Actions          []string `json:"actions"`
}

func (s *Service) Booking(ctx context.Context, id int64) (BookingDetail, error) {
	b, err := s.store.Repos().Bookings.Get(ctx, id)
	if err != nil {
		return BookingDetail{}, err
	}
	perUser, err := metrics.BookingsPerUser(ctx, s.store.Repos().Bookings, []int64{b.UserID})
	if err != nil {
		return BookingDetail{}, err
	}
	return BookingDetail{
		Booking:          b,
		Nights:           b.Nights(),
		CustomerBookings: perUser[b.UserID],
		Actions:          command.BookingActions(b),
	}, nil
}
