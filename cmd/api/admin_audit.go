package main

import (
	"context"
	"net/http"
	"time"
)

// listAuditLogsHandler godoc
//
//	@Summary		List audit log
//	@Description	Recent admin activity, newest first.
//	@Tags			admin-audit
//	@Produce		json
//	@Param			search		query		string	false	"Action or description"
//	@Param			actor		query		int		false	"Admin ID"
//	@Param			resource	query		string	false	"listing|booking|review|ticket"
//	@Param			resource_id	query		int		false	"Entity ID"
//	@Param			from		query		string	false	"From (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To (YYYY-MM-DD)"
//	@Param			sort		query		string	false	"newest|oldest"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(20)
//	@Success		200			{object}	backoffice.AuditView
//	@Failure		401			{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/admin/audit-logs [get]
func (app *application) listAuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := app.backoffice.AuditLog(ctx, r.URL.Query())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	_ = app.jsonResponse(w, http.StatusOK, view)
}
