package metrics

import (
	"context"
	"fmt"
	"time"

	"safar/internal/collection"
	"safar/internal/query"

	"golang.org/x/sync/errgroup"
)

// Booking fields the enricher aggregates over.
const (
	FieldListingID    = "listing_id"
	FieldUserID       = "user_id"
	FieldStatus       = "status"
	FieldTotalPrice   = "total_price"
	FieldCreatedEpoch = "created_epoch"
)

// Subject is the part of a listing row the derived metrics depend on.
type Subject struct {
	ID        int64
	Approval  string
	Available bool
	CreatedAt time.Time
}

// Derived holds the computed values for one listing.
type Derived struct {
	TotalBookings   int64      `json:"total_bookings"`
	TotalRevenue    float64    `json:"total_revenue"`
	UtilizationRate float64    `json:"utilization_rate"`
	DisplayStatus   string     `json:"display_status"`
	LastBookingAt   *time.Time `json:"last_booking_at,omitempty"`
}

// Enricher batches the dependent booking aggregates for a page of listings
// into grouped queries, one per metric.
type Enricher struct {
	Bookings collection.Aggregator
	Now      func() time.Time
}

func NewEnricher(bookings collection.Aggregator) *Enricher {
	return &Enricher{Bookings: bookings, Now: time.Now}
}

// Enrich returns one Derived per subject, in input order. It reads only and
// may be called repeatedly; results change only when stored data changes.
func (e *Enricher) Enrich(ctx context.Context, subjects []Subject) ([]Derived, error) {
	out := make([]Derived, len(subjects))
	if len(subjects) == 0 {
		return out, nil
	}

	ids := make([]any, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	page := query.In(FieldListingID, ids...)

	var counts, revenue, last map[int64]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = e.Bookings.GroupAggregate(gctx,
			collection.Count(query.Conj(page, query.In(FieldStatus, "PENDING", "CONFIRMED", "COMPLETED"))),
			FieldListingID)
		if err != nil {
			return fmt.Errorf("booking counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		revenue, err = e.Bookings.GroupAggregate(gctx,
			collection.Sum(FieldTotalPrice, query.Conj(page, query.Eq(FieldStatus, "COMPLETED"))),
			FieldListingID)
		if err != nil {
			return fmt.Errorf("revenue: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		last, err = e.Bookings.GroupAggregate(gctx,
			collection.Max(FieldCreatedEpoch, page),
			FieldListingID)
		if err != nil {
			return fmt.Errorf("last booking: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := e.now()
	for i, s := range subjects {
		n := int64(counts[s.ID])
		d := Derived{
			TotalBookings:   n,
			TotalRevenue:    Round2(revenue[s.ID]),
			UtilizationRate: Round2(UtilizationRate(n, s.CreatedAt, now)),
			DisplayStatus:   DisplayStatus(s.Approval, s.Available),
		}
		if ts, ok := last[s.ID]; ok && ts > 0 {
			t := time.Unix(int64(ts), 0).UTC()
			d.LastBookingAt = &t
		}
		out[i] = d
	}
	return out, nil
}

func (e *Enricher) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// BookingsPerUser counts bookings per user for the given user ids with one
// grouped query.
func BookingsPerUser(ctx context.Context, bookings collection.Aggregator, userIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	ids := make([]any, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}
	res, err := bookings.GroupAggregate(ctx, collection.Count(query.In(FieldUserID, ids...)), FieldUserID)
	if err != nil {
		return nil, fmt.Errorf("bookings per user: %w", err)
	}
	for _, id := range userIDs {
		out[id] = int64(res[id])
	}
	return out, nil
}
