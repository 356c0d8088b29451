package main

import (
	"fmt"
	"net/http"
	"strconv"

	"safar/internal/command"

	"github.com/go-chi/chi/v5"
)

func readIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", command.ErrValidation, name)
	}
	return id, nil
}

// ActionRequest is the body of every POST .../actions route. Which of the
// optional fields are needed depends on the action.
type ActionRequest struct {
	Action     string `json:"action" validate:"required,max=32"`
	Reason     string `json:"reason,omitempty" validate:"max=1000"`
	Note       string `json:"note,omitempty" validate:"max=1000"`
	Comment    string `json:"comment,omitempty" validate:"max=5000"`
	Response   string `json:"response,omitempty" validate:"max=5000"`
	Body       string `json:"body,omitempty" validate:"max=10000"`
	Internal   bool   `json:"internal,omitempty"`
	AssigneeID int64  `json:"assignee_id,omitempty" validate:"required_if=Action assign,min=0"`
}

func (p ActionRequest) fields() command.Fields {
	return command.Fields{
		Reason:     p.Reason,
		Note:       p.Note,
		Comment:    p.Comment,
		Response:   p.Response,
		Body:       p.Body,
		Internal:   p.Internal,
		AssigneeID: p.AssigneeID,
	}
}

// ActionResponse reports the outcome of an admin command.
type ActionResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	AuditID int64  `json:"audit_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// actionHandler godoc
//
//	@Summary		Apply an admin action
//	@Description	Listings: approve, reject (reason), activate, deactivate.
//	@Description	Bookings: confirm, complete, cancel (reason); the customer is notified after commit.
//	@Description	Reviews: hide, unhide, flag, unflag, feature, unfeature, edit (comment), respond (response), remove (reason).
//	@Description	Tickets: assign (assignee_id), start, wait, resolve, close, reopen, escalate, reply (body, internal).
//	@Description	The change and its audit entry commit together.
//	@Tags			admin-actions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Entity ID"
//	@Param			payload	body		ActionRequest	true	"Action"
//	@Success		200		{object}	ActionResponse
//	@Failure		400		{object}	errorEnvelope
//	@Failure		404		{object}	errorEnvelope
//	@Failure		409		{object}	errorEnvelope
//	@Failure		500		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/listings/{id}/actions [post]
//	@Router			/admin/bookings/{id}/actions [post]
//	@Router			/admin/reviews/{id}/actions [post]
//	@Router			/admin/tickets/{id}/actions [post]
func (app *application) actionHandler(resource, idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := readIDParam(r, idParam)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		var payload ActionRequest
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		if err := Validate.Struct(payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		cmd, err := command.Decode(resource, payload.Action, payload.fields())
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		res, err := app.commands.Execute(r.Context(), actorFromRequest(r), id, cmd)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}

		app.logger.Infow("admin action",
			"resource", resource, "id", id, "action", cmd.Action(),
			"admin", res.Audit.ActorID, "request_id", res.Audit.RequestID)

		if err := writeJSON(w, http.StatusOK, ActionResponse{Success: true, Data: res.Entity, AuditID: res.Audit.ID}); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}
