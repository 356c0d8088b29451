package main

import (
	"context"
	"net/http"
	"time"

	"safar/internal/backoffice"
)

// listTicketsHandler godoc
//
//	@Summary		List support tickets
//	@Description	Paginated tickets with status and priority counts.
//	@Tags			admin-tickets
//	@Produce		json
//	@Param			search		query		string	false	"Reference, subject or requester name/email"
//	@Param			status		query		string	false	"new|assigned|in_progress|waiting|resolved|closed|all"
//	@Param			priority	query		string	false	"low|medium|high"
//	@Param			category	query		string	false	"booking|payment|listing|account|other"
//	@Param			assignee	query		int		false	"Assigned admin ID"
//	@Param			sort		query		string	false	"newest|oldest|priority|updated"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(20)
//	@Success		200			{object}	backoffice.TicketsView
//	@Failure		401			{object}	errorEnvelope
//	@Failure		500			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/tickets [get]
func (app *application) listTicketsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := app.backoffice.Tickets(ctx, r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, view)
}

// getTicketHandler godoc
//
//	@Summary		Get support ticket
//	@Description	One ticket with its message thread and allowed actions.
//	@Tags			admin-tickets
//	@Produce		json
//	@Param			ticketID	path		int	true	"Ticket ID"
//	@Success		200			{object}	backoffice.TicketDetail
//	@Failure		404			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/tickets/{ticketID} [get]
func (app *application) getTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "ticketID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	detail, err := app.backoffice.Ticket(ctx, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, detail)
}

// CreateTicketRequest opens a ticket on behalf of a user.
type CreateTicketRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Category string `json:"category" validate:"required,oneof=booking payment listing account other"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH low medium high"`
	Message  string `json:"message" validate:"max=10000"`
}

// createTicketHandler godoc
//
//	@Summary		Open a support ticket
//	@Description	Creates a ticket with a TKT-XXXX-XXXX reference and an optional first message, audited in the same transaction.
//	@Tags			admin-tickets
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTicketRequest	true	"Ticket"
//	@Success		201		{object}	backoffice.TicketDetail
//	@Failure		400		{object}	errorEnvelope
//	@Failure		404		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/tickets [post]
func (app *application) createTicketHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTicketRequest
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	detail, err := app.backoffice.CreateTicket(ctx, app.tickets, actorFromRequest(r), backoffice.NewTicket{
		UserID:   payload.UserID,
		Subject:  payload.Subject,
		Category: payload.Category,
		Priority: payload.Priority,
		Body:     payload.Message,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusCreated, detail)
}
