// Package store wires the domain collections to a backend and provides the
// transactional unit of work used by admin commands.
package store

import (
	"context"

	"safar/internal/audit"
	"safar/internal/collection"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/reviews"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
)

var ErrNotFound = collection.ErrNotFound

// Repos is the set of collections available to a request or a transaction.
type Repos struct {
	Users    collection.Collection[users.User]
	Listings collection.Collection[listings.Listing]
	Bookings collection.Collection[bookings.Booking]
	Reviews  collection.Collection[reviews.Review]
	Tickets  collection.Collection[tickets.Ticket]
	Messages collection.Collection[tickets.Message]
	AuditLog collection.Collection[audit.Entry]
	Audit    *audit.Logger
}

// Store is implemented by the Postgres container and the in-memory store.
type Store interface {
	Repos() *Repos
	// WithTx runs fn against transaction-scoped repos. Every write made
	// through them, audit entries included, commits together or not at all.
	WithTx(ctx context.Context, fn func(tx *Repos) error) error
}
