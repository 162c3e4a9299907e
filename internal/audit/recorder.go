package audit

import (
	"context"
	"fmt"

	"github.com/epc-retail/exclusivity-backend/pkg/auth"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
	"github.com/epc-retail/exclusivity-backend/pkg/types"
)

// Entry is what mutating services hand to the recorder. Actor identity and
// client address come from the request context, not from the caller.
type Entry struct {
	EntityType string
	EntityID   string
	Action     string
	EntityName string
	Details    map[string]any
}

// Recorder appends audit rows and serves the admin listing.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, params ListParams) ([]models.AuditLog, error)
}

type logStore interface {
	Create(ctx context.Context, row *models.AuditLog) error
	List(ctx context.Context, params ListParams) ([]models.AuditLog, error)
}

type recorder struct {
	repo logStore
	logg *logger.Logger
}

// NewRecorder constructs the audit recorder.
func NewRecorder(repo logStore, logg *logger.Logger) (Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &recorder{repo: repo, logg: logg}, nil
}

// Record writes one audit row. A write failure is logged and returned but
// callers treat it as non-fatal: the business mutation already committed.
func (r *recorder) Record(ctx context.Context, entry Entry) error {
	row := &models.AuditLog{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		EntityName: entry.EntityName,
		IPAddress:  auth.ClientIPFromContext(ctx),
		Details:    types.JSONMap(entry.Details),
	}
	if claims := auth.ClaimsFromContext(ctx); claims != nil {
		row.UserID = claims.UserID.String()
		row.UserName = claims.Name
		row.UserEmail = claims.Email
	}

	if err := r.repo.Create(ctx, row); err != nil {
		r.logg.Error(ctx, "audit write failed", err)
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}

func (r *recorder) List(ctx context.Context, params ListParams) ([]models.AuditLog, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	if params.Offset < 0 {
		params.Offset = 0
	}
	return r.repo.List(ctx, params)
}
