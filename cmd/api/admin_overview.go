package main

import (
	"context"
	"net/http"
	"time"
)

// overviewHandler godoc
//
//	@Summary		Admin overview
//	@Description	Dashboard cards (users, listings per kind, bookings, revenue, reviews, tickets) and six months of growth.
//	@Tags			admin-overview
//	@Produce		json
//	@Success		200	{object}	backoffice.Overview
//	@Failure		401	{object}	errorEnvelope
//	@Failure		403	{object}	errorEnvelope
//	@Failure		500	{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/overview [get]
func (app *application) overviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	out, err := app.backoffice.Overview(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, out)
}
