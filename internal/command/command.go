// Package command applies admin status changes. Each command loads one
// entity, checks the transition against that entity's state machine, writes
// the change and an audit entry in one transaction, and then publishes any
// follow-up notification.
package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"safar/internal/audit"
	"safar/internal/collection"
	"safar/internal/domain/bookings"
	"safar/internal/store"

	"go.uber.org/zap"
)

var (
	ErrNotFound          = store.ErrNotFound
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func transitionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidTransition}, args...)...)
}

// Resource types.
const (
	Listing = "listing"
	Booking = "booking"
	Review  = "review"
	Ticket  = "ticket"
)

// Command is one admin action. The set is closed: every implementation lives
// in this package and Handler.Execute handles each of them.
type Command interface {
	Resource() string
	Action() string
	// Validate checks the command's own fields, independent of entity state.
	Validate() error
	describe(id int64) string
}

// Actor is the admin issuing a command.
type Actor struct {
	ID      int64
	Request audit.RequestContext
}

// BookingNotifier is told about booking changes after they commit.
type BookingNotifier interface {
	BookingStatusChanged(ctx context.Context, b bookings.Booking) error
}

// notifyTimeout bounds one booking push; it no longer shares the request's
// deadline.
const notifyTimeout = 10 * time.Second

type Handler struct {
	store    store.Store
	notifier BookingNotifier
	logger   *zap.SugaredLogger
	pending  sync.WaitGroup
}

func NewHandler(s store.Store, notifier BookingNotifier, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{store: s, notifier: notifier, logger: logger}
}

// Result is the entity after the command committed, plus the audit entry.
type Result struct {
	Entity any
	Audit  audit.Entry
}

// Execute runs cmd against entity id.
func (h *Handler) Execute(ctx context.Context, actor Actor, id int64, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, invalidf("missing command")
	}
	if id <= 0 {
		return Result{}, invalidf("invalid %s id %d", cmd.Resource(), id)
	}
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	err := h.store.WithTx(ctx, func(tx *store.Repos) error {
		var (
			before, after any
			err           error
		)
		switch c := cmd.(type) {
		case ListingCommand:
			before, after, err = transition(ctx, tx.Listings, id, c.patch)
		case BookingCommand:
			before, after, err = transition(ctx, tx.Bookings, id, c.patch)
		case ReviewCommand:
			before, after, err = transition(ctx, tx.Reviews, id, c.patch)
		case TicketCommand:
			before, after, err = runTicket(ctx, tx, actor, id, c)
		default:
			err = invalidf("unsupported command %T", cmd)
		}
		if err != nil {
			return err
		}

		entry, err := tx.Audit.LogAction(ctx, actor.ID,
			cmd.Resource()+"."+cmd.Action(),
			cmd.describe(id),
			actor.Request,
			audit.OnResource(cmd.Resource(), id),
			audit.WithChange(before, after),
		)
		if err != nil {
			return err
		}
		res = Result{Entity: after, Audit: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if b, ok := res.Entity.(bookings.Booking); ok {
		h.notifyBooking(ctx, b)
	}
	return res, nil
}

// notifyBooking sends the push in the background. It is best effort: the
// change is already committed and the admin's response does not wait on Expo.
func (h *Handler) notifyBooking(ctx context.Context, b bookings.Booking) {
	if h.notifier == nil {
		return
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := h.notifier.BookingStatusChanged(ctx, b); err != nil {
			h.logger.Warnw("booking notification failed", "booking_id", b.ID, "status", b.Status, "error", err)
		}
	}()
}

// Wait blocks until every notification started so far has finished. The
// server calls it after shutdown so pushes are not cut off.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// transition loads id, derives the patch from its current state and applies
// it. The load happens inside the transaction, so Postgres locks the row.
func transition[T any](ctx context.Context, c collection.Collection[T], id int64, patch func(T) (collection.Patch, error)) (T, T, error) {
	var zero T
	before, err := c.Get(ctx, id)
	if err != nil {
		return zero, zero, err
	}
	p, err := patch(before)
	if err != nil {
		return zero, zero, err
	}
	after, err := c.Update(ctx, id, p)
	if err != nil {
		return zero, zero, err
	}
	return before, after, nil
}
