package controllers

import (
	"fmt"
	"net/http"

	"github.com/epc-retail/exclusivity-backend/api/responses"
	"github.com/epc-retail/exclusivity-backend/api/validators"
	"github.com/epc-retail/exclusivity-backend/internal/export"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportTransferOrders builds and streams the transfer-order workbook. An
// empty outcome is a flat {success:false, message} rather than an error
// envelope, because the frontend surfaces the message verbatim.
func ExportTransferOrders(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}

		var req export.Request
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Export(ctx, req)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
				responses.WriteFailureMessage(w, http.StatusBadRequest, typed.Message())
				return
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result.Content); err != nil && logg != nil {
			logg.Error(ctx, "export stream failed", err)
		}
	}
}
