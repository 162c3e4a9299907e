package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epc-retail/exclusivity-backend/api/responses"
	"github.com/epc-retail/exclusivity-backend/api/validators"
	"github.com/epc-retail/exclusivity-backend/internal/assets"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
)

func AssetsList(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
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

		list, err := svc.List(ctx, assets.ListParams{
			Status:    validators.QueryString(r, "status"),
			AssetType: validators.QueryString(r, "assetType"),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, list)
	}
}

func AssetsCreate(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		var input assets.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func AssetsGet(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AssetsUpdate(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var input assets.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AssetsDelete(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AssetsCheckout(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var input assets.CheckoutInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Checkout(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AssetsCheckin(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Checkin(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
