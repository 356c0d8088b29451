package main

import (
	"context"
	"net/http"
	"time"
)

// listReviewsHandler godoc
//
//	@Summary		List reviews
//	@Description	Paginated reviews for moderation with visibility tabs and average rating.
//	@Tags			admin-reviews
//	@Produce		json
//	@Param			search		query		string	false	"Comment, author name/email or listing title"
//	@Param			status		query		string	false	"visible|hidden|flagged|featured|removed|all"
//	@Param			kind		query		string	false	"property|vehicle|tour"
//	@Param			rating		query		int		false	"Exact rating"
//	@Param			minRating	query		int		false	"Minimum rating"
//	@Param			listing		query		int		false	"Listing ID"
//	@Param			flagged		query		bool	false	"Flagged only"
//	@Param			hidden		query		bool	false	"Hidden only"
//	@Param			featured	query		bool	false	"Featured only"
//	@Param			sort		query		string	false	"newest|oldest|rating_high|rating_low"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(20)
//	@Success		200			{object}	backoffice.ReviewsView
//	@Failure		401			{object}	errorEnvelope
//	@Failure		500			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := app.backoffice.Reviews(ctx, r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, view)
}
