package main

import (
	"context"
	"net/http"
	"time"
)

// listListingsHandler godoc
//
//	@Summary		List properties, vehicles or tours
//	@Description	Paginated listings of one kind with approval tabs and derived metrics (bookings, revenue, utilization, display status).
//	@Tags			admin-listings
//	@Produce		json
//	@Param			search		query		string	false	"Title, city, country, category or owner name/email"
//	@Param			status		query		string	false	"pending|approved|rejected|all"
//	@Param			category	query		string	false	"Category allowed for the kind"
//	@Param			priceRange	query		string	false	"Price range, e.g. 1000-3000 or 5000+"
//	@Param			rating		query		number	false	"Minimum average rating"
//	@Param			owner		query		int		false	"Owner or guide ID"
//	@Param			available	query		bool	false	"Availability"
//	@Param			from		query		string	false	"Created from (YYYY-MM-DD)"
//	@Param			to			query		string	false	"Created to (YYYY-MM-DD)"
//	@Param			sort		query		string	false	"newest|oldest|price_low|price_high|rating|title"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(20)
//	@Success		200			{object}	backoffice.ListingsView
//	@Failure		401			{object}	errorEnvelope
//	@Failure		500			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/properties [get]
//	@Router			/admin/vehicles [get]
//	@Router			/admin/tours [get]
func (app *application) listListingsHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		view, err := app.backoffice.Listings(ctx, kind, r.URL.Query())
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}

		_ = app.jsonResponse(w, http.StatusOK, view)
	}
}

// getListingHandler godoc
//
//	@Summary		Get listing
//	@Description	One listing with derived metrics, recent bookings, review stats and allowed actions.
//	@Tags			admin-listings
//	@Produce		json
//	@Param			listingID	path		int	true	"Listing ID"
//	@Success		200			{object}	backoffice.ListingDetail
//	@Failure		404			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/listings/{listingID} [get]
func (app *application) getListingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "listingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	detail, err := app.backoffice.Listing(ctx, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, detail)
}
