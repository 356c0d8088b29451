package backoffice

import (
	"context"
	"net/url"

	"safar/internal/aggregate"
	"safar/internal/command"
	"safar/internal/domain/reviews"
	"safar/internal/metrics"
	"safar/internal/query"
)

type ReviewRow struct {
	reviews.Review
	Visibility string   `json:"visibility"`
	Actions    []string `json:"actions"`
}

type ReviewSummary struct {
	Counts        StatusCounts `json:"counts"`
	AverageRating float64      `json:"average_rating"`
}

type ReviewsView struct {
	ListMeta
	Summary ReviewSummary `json:"summary"`
	Rows    []ReviewRow   `json:"rows"`
}

var reviewTabs = []string{"visible", "hidden", "flagged", "featured", "removed"}

func (s *Service) Reviews(ctx context.Context, q url.Values) (ReviewsView, error) {
	src := s.store.Repos().Reviews
	lq := listQuery[reviews.Review]{
		source:         src,
		schema:         reviews.Schema,
		sorts:          reviews.Sorts,
		summaryIgnores: []string{"status", "hidden", "flagged", "featured", "removed"},
	}
	page, sum, meta, err := lq.run(ctx, q, func(c *aggregate.Collector) {
		c.Count("total", src, nil)
		for _, tab := range reviewTabs {
			c.Count(tab, src, reviews.StatusFilter[tab])
		}
		c.Avg("average_rating", src, "rating", query.Eq("is_removed", false))
	})
	if err != nil {
		return ReviewsView{}, err
	}

	rows := make([]ReviewRow, len(page.Rows))
	for i, r := range page.Rows {
		rows[i] = ReviewRow{Review: r, Visibility: r.Visibility(), Actions: command.ReviewActions(r)}
	}

	return ReviewsView{
		ListMeta: meta,
		Summary: ReviewSummary{
			Counts:        statusCounts(sum, reviewTabs),
			AverageRating: metrics.Round2(sum.Float("average_rating")),
		},
		Rows: rows,
	}, nil
}
