package controllers

import (
	"net/http"

	"github.com/epc-retail/exclusivity-backend/api/responses"
	"github.com/epc-retail/exclusivity-backend/api/validators"
	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	"github.com/epc-retail/exclusivity-backend/internal/filters"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
)

// FilterBranches lists stores with their excluded item codes for the export
// screen.
func FilterBranches(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		branches, err := svc.Branches(ctx, filters.BranchesInput{
			Chain:      validators.QueryString(r, "chain"),
			Category:   validators.QueryString(r, "category"),
			StoreClass: validators.QueryString(r, "storeClass"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, branches)
	}
}

func FilterItems(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		page, err := itemsPageParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.Items(ctx, validators.QueryString(r, "category"), page)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// itemsPageParams reads the optional limit and cursor query parameters.
func itemsPageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: validators.QueryString(r, "cursor")}, nil
}

func NBFIChains(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		chains, err := svc.Chains(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, chains)
	}
}

func NBFIBrands(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		brands, err := svc.Brands(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, brands)
	}
}

func NBFIStoreClasses(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		classes, err := svc.StoreClasses(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, classes)
	}
}

func NBFIStores(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		stores, err := svc.Stores(ctx, filters.StoresInput{
			Chain:      validators.QueryString(r, "chain"),
			StoreClass: validators.QueryString(r, "storeClass"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, stores)
	}
}

func NBFIItems(svc filters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filters service unavailable"))
			return
		}
		page, err := itemsPageParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.Items(ctx, validators.QueryString(r, "brand"), page)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func listInputFromQuery(r *http.Request) (exclusivity.ListInput, error) {
	chain, err := validators.RequireQuery(r, "chain")
	if err != nil {
		return exclusivity.ListInput{}, err
	}
	brand, err := validators.RequireQuery(r, "brand")
	if err != nil {
		return exclusivity.ListInput{}, err
	}
	storeClass, err := validators.RequireQuery(r, "storeClass")
	if err != nil {
		return exclusivity.ListInput{}, err
	}
	return exclusivity.ListInput{Chain: chain, Brand: brand, StoreClass: storeClass}, nil
}

// NBFIExclusivityItems lists items already marked for the combination.
func NBFIExclusivityItems(svc exclusivity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exclusivity service unavailable"))
			return
		}
		input, err := listInputFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.ListExclusivityItems(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, items)
	}
}

// NBFIItemsForAssignment lists the brand catalog minus already-marked items.
func NBFIItemsForAssignment(svc exclusivity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exclusivity service unavailable"))
			return
		}
		input, err := listInputFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.ListItemsForAssignment(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteItems(w, items)
	}
}
