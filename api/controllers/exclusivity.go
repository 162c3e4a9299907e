package controllers

import (
	"net/http"

	"github.com/epc-retail/exclusivity-backend/api/responses"
	"github.com/epc-retail/exclusivity-backend/api/validators"
	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
)

// maxUploadSize caps the mass-upload workbook at 10 MiB.
const maxUploadSize = 10 << 20

// AddExclusivityItems marks a batch of item codes for one combination.
func AddExclusivityItems(svc exclusivity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exclusivity service unavailable"))
			return
		}

		var input exclusivity.AddItemsInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.AddItems(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteBulk(w, outcome.Envelope())
	}
}

// RemoveExclusivityItem unmarks one item code.
func RemoveExclusivityItem(svc exclusivity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exclusivity service unavailable"))
			return
		}

		var input exclusivity.RemoveItemInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveItem(ctx, input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// MassUploadExclusivityItems accepts a multipart xlsx and applies each row,
// collecting per-row failures.
func MassUploadExclusivityItems(svc exclusivity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exclusivity service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, `multipart field "file" required`))
			return
		}
		defer file.Close()

		outcome, err := svc.MassUpload(ctx, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteBulk(w, outcome.Envelope())
	}
}
