package main

import (
	"context"
	"net/http"
	"time"
)

// listBookingsHandler godoc
//
//	@Summary		List bookings
//	@Description	Paginated bookings with status tabs, revenue and per-customer booking counts.
//	@Tags			admin-bookings
//	@Produce		json
//	@Param			search		query		string	false	"Customer name/email, listing title or city"
//	@Param			status		query		string	false	"pending|confirmed|completed|cancelled|all"
//	@Param			kind		query		string	false	"property|vehicle|tour"
//	@Param			priceRange	query		string	false	"Total price range, e.g. 1000-3000 or 5000+"
//	@Param			listing		query		int		false	"Listing ID"
//	@Param			user		query		int		false	"Customer ID"
//	@Param			from		query		string	false	"Check-in from (YYYY-MM-DD)"
//	@Param			to			query		string	false	"Check-in to (YYYY-MM-DD)"
//	@Param			sort		query		string	false	"newest|oldest|price_high|price_low|checkin"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(20)
//	@Success		200			{object}	backoffice.BookingsView
//	@Failure		401			{object}	errorEnvelope
//	@Failure		500			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings [get]
func (app *application) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := app.backoffice.Bookings(ctx, r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, view)
}

// getBookingHandler godoc
//
//	@Summary		Get booking
//	@Description	One booking with the actions currently allowed on it.
//	@Tags			admin-bookings
//	@Produce		json
//	@Param			bookingID	path		int	true	"Booking ID"
//	@Success		200			{object}	backoffice.BookingDetail
//	@Failure		404			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/bookings/{bookingID} [get]
func (app *application) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	detail, err := app.backoffice.Booking(ctx, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, detail)
}
