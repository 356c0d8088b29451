package backoffice

import (
	"context"
	"fmt"
	"net/url"

	"safar/internal/aggregate"
	"safar/internal/collection"
	"safar/internal/command"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/metrics"
	"safar/internal/query"
)

type ListingRow struct {
	listings.Listing
	metrics.Derived
	Actions []string `json:"actions"`
}

type ListingSummary struct {
	Counts        StatusCounts `json:"counts"`
	Active        int64        `json:"active"`
	Inactive      int64        `json:"inactive"`
	AveragePrice  float64      `json:"average_price"`
	AverageRating float64      `json:"average_rating"`
}

type ListingsView struct {
	ListMeta
	Kind       string         `json:"kind"`
	Categories []string       `json:"categories"`
	Summary    ListingSummary `json:"summary"`
	Rows       []ListingRow   `json:"rows"`
}

var approvalStatuses = []string{listings.StatusPending, listings.StatusApproved, listings.StatusRejected}

// Listings lists properties, vehicles or tours with their derived metrics.
func (s *Service) Listings(ctx context.Context, kind string, q url.Values) (ListingsView, error) {
	if !listings.ValidKind(kind) {
		return ListingsView{}, fmt.Errorf("%w: unknown listing kind %q", command.ErrValidation, kind)
	}

	src := s.store.Repos().Listings
	lq := listQuery[listings.Listing]{
		source:         src,
		schema:         listings.SchemaFor(kind),
		sorts:          listings.Sorts,
		base:           query.Eq("kind", kind),
		summaryIgnores: []string{"status", "available"},
	}
	page, sum, meta, err := lq.run(ctx, q, func(c *aggregate.Collector) {
		countStatuses(c, src, "approval_status", approvalStatuses)
		approved := query.Eq("approval_status", listings.StatusApproved)
		c.Count("active", src, query.Conj(approved, query.Eq("is_available", true)))
		c.Count("inactive", src, query.Conj(approved, query.Eq("is_available", false)))
		c.Avg("average_price", src, "price", nil)
		c.Avg("average_rating", src, "rating_avg", query.Gt("rating_count", 0))
	})
	if err != nil {
		return ListingsView{}, err
	}

	rows, err := s.listingRows(ctx, page.Rows)
	if err != nil {
		return ListingsView{}, err
	}

	return ListingsView{
		ListMeta:   meta,
		Kind:       kind,
		Categories: listings.Categories[kind],
		Summary: ListingSummary{
			Counts:        statusCounts(sum, approvalStatuses),
			Active:        sum.Int("active"),
			Inactive:      sum.Int("inactive"),
			AveragePrice:  metrics.Round2(sum.Float("average_price")),
			AverageRating: metrics.Round2(sum.Float("average_rating")),
		},
		Rows: rows,
	}, nil
}

func subject(l listings.Listing) metrics.Subject {
	return metrics.Subject{ID: l.ID, Approval: l.ApprovalStatus, Available: l.IsAvailable, CreatedAt: l.CreatedAt}
}

func (s *Service) listingRows(ctx context.Context, ls []listings.Listing) ([]ListingRow, error) {
	subjects := make([]metrics.Subject, len(ls))
	for i, l := range ls {
		subjects[i] = subject(l)
	}
	derived, err := s.enricher.Enrich(ctx, subjects)
	if err != nil {
		return nil, fmt.Errorf("enrich listings: %w", err)
	}
	rows := make([]ListingRow, len(ls))
	for i, l := range ls {
		rows[i] = ListingRow{Listing: l, Derived: derived[i], Actions: command.ListingActions(l)}
	}
	return rows, nil
}

type ReviewStats struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
	Flagged int64   `json:"flagged"`
}

type ListingDetail struct {
	ListingRow
	RecentBookings []bookings.Booking `json:"recent_bookings"`
	Reviews        ReviewStats        `json:"reviews"`
}

const recentBookings = 5

func (s *Service) Listing(ctx context.Context, id int64) (ListingDetail, error) {
	repos := s.store.Repos()
	l, err := repos.Listings.Get(ctx, id)
	if err != nil {
		return ListingDetail{}, err
	}

	rows, err := s.listingRows(ctx, []listings.Listing{l})
	if err != nil {
		return ListingDetail{}, err
	}

	recent, err := repos.Bookings.Find(ctx, collection.FindOptions{
		Where: query.Eq("listing_id", id),
		Order: bookings.Sorts.Resolve("newest"),
		Limit: recentBookings,
	})
	if err != nil {
		return ListingDetail{}, err
	}

	visible := query.Conj(query.Eq("listing_id", id), query.Eq("is_removed", false))
	stats, err := aggregate.New().
		Count("count", repos.Reviews, visible).
		Avg("average", repos.Reviews, "rating", visible).
		Count("flagged", repos.Reviews, query.Conj(visible, query.Eq("is_flagged", true))).
		Run(ctx)
	if err != nil {
		return ListingDetail{}, err
	}

	if recent == nil {
		recent = []bookings.Booking{}
	}
	return ListingDetail{
		ListingRow:     rows[0],
		RecentBookings: recent,
		Reviews: ReviewStats{
			Count:   stats.Int("count"),
			Average: metrics.Round2(stats.Float("average")),
			Flagged: stats.Int("flagged"),
		},
	}, nil
}
