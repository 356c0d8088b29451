package store

import (
	"context"
	"sync"

	"safar/internal/audit"
	"safar/internal/collection"
	"safar/internal/domain/bookings"
	"safar/internal/domain/listings"
	"safar/internal/domain/reviews"
	"safar/internal/domain/tickets"
	"safar/internal/domain/users"
)

// Seed holds the initial rows of a Memory store.
type Seed struct {
	Users    []users.User
	Listings []listings.Listing
	Bookings []bookings.Booking
	Reviews  []reviews.Review
	Tickets  []tickets.Ticket
	Messages []tickets.Message
}

// Memory is an in-process Store for tests and local runs. Transactions are
// serialized and roll back by restoring a snapshot of every collection.
type Memory struct {
	txMu sync.Mutex

	Users    *collection.Memory[users.User]
	Listings *collection.Memory[listings.Listing]
	Bookings *collection.Memory[bookings.Booking]
	Reviews  *collection.Memory[reviews.Review]
	Tickets  *collection.Memory[tickets.Ticket]
	Messages *collection.Memory[tickets.Message]
	AuditLog *collection.Memory[audit.Entry]

	repos *Repos
}

func NewMemory(seed Seed) *Memory {
	m := &Memory{
		Users:    collection.NewMemory(seed.Users...),
		Listings: collection.NewMemory(seed.Listings...),
		Bookings: collection.NewMemory(seed.Bookings...),
		Reviews:  collection.NewMemory(seed.Reviews...),
		Tickets:  collection.NewMemory(seed.Tickets...),
		Messages: collection.NewMemory(seed.Messages...),
		AuditLog: collection.NewMemory[audit.Entry](),
	}
	m.repos = &Repos{
		Users:    m.Users,
		Listings: m.Listings,
		Bookings: m.Bookings,
		Reviews:  m.Reviews,
		Tickets:  m.Tickets,
		Messages: m.Messages,
		AuditLog: m.AuditLog,
		Audit:    audit.NewLogger(m.AuditLog),
	}
	return m
}

func (m *Memory) Repos() *Repos {
	return m.repos
}

// WithTx serializes units of work; reads outside a transaction may observe
// its writes before it finishes.
func (m *Memory) WithTx(ctx context.Context, fn func(tx *Repos) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	restore := []func(){
		m.Users.Snapshot(),
		m.Listings.Snapshot(),
		m.Bookings.Snapshot(),
		m.Reviews.Snapshot(),
		m.Tickets.Snapshot(),
		m.Messages.Snapshot(),
		m.AuditLog.Snapshot(),
	}
	if err := fn(m.repos); err != nil {
		for _, r := range restore {
			r()
		}
		return err
	}
	return nil
}

// UseAuditStore replaces the audit writer used inside transactions. Tests
// use it to simulate a failing audit log.
func (m *Memory) UseAuditStore(c audit.Creator) {
	m.repos.Audit = audit.NewLogger(c)
}
