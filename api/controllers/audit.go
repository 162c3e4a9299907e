package controllers

import (
	"net/http"

	"github.com/epc-retail/exclusivity-backend/api/responses"
	"github.com/epc-retail/exclusivity-backend/api/validators"
	"github.com/epc-retail/exclusivity-backend/internal/audit"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
)

// AuditLogsList is a simple paged listing for admins.
func AuditLogsList(recorder audit.Recorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if recorder == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit recorder unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		logs, err := recorder.List(ctx, audit.ListParams{
			EntityType: validators.QueryString(r, "entityType"),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, logs)
	}
}
