package store

import (
	"context"
	"fmt"

	"safar/internal/audit"
	"safar/internal/collection"
	"safar/internal/db"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/reviews"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
	"safar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Container is the Postgres-backed Store.
type Container struct {
	pool  *pgxpool.Pool
	repos *Repos
}

func NewContainer(pool *pgxpool.Pool) *Container {
	return &Container{
		pool:  pool,
		repos: newRepos(pool, false),
	}
}

func newRepos(q dbx.Querier, locking bool) *Repos {
	r := &Repos{
		Users:    collection.NewPostgres(q, users.Table),
		Messages: collection.NewPostgres(q, tickets.MessageTable),
		AuditLog: collection.NewPostgres(q, audit.Table),
	}
	listingsPG := collection.NewPostgres(q, listings.Table)
	bookingsPG := collection.NewPostgres(q, bookings.Table)
	reviewsPG := collection.NewPostgres(q, reviews.Table)
	ticketsPG := collection.NewPostgres(q, tickets.Table)
	if locking {
		// rows read for a command stay locked until commit
		listingsPG = listingsPG.Locking()
		bookingsPG = bookingsPG.Locking()
		reviewsPG = reviewsPG.Locking()
		ticketsPG = ticketsPG.Locking()
	}
	r.Listings = listingsPG
	r.Bookings = bookingsPG
	r.Reviews = reviewsPG
	r.Tickets = ticketsPG
	r.Audit = audit.NewLogger(r.AuditLog)
	return r
}

func (c *Container) Repos() *Repos {
	return c.repos
}

// WithTx runs a unit of work atomically.
func (c *Container) WithTx(ctx context.Context, fn func(tx *Repos) error) error {
	if c.pool == nil {
		return fmt.Errorf("store container pool is nil")
	}
	return db.WithTx(ctx, c.pool, func(tx pgx.Tx) error {
		return fn(newRepos(tx, true))
	})
}
