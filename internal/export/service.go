package export

import (
	"context"
	"fmt"
	"time"

	"github.com/epc-retail/exclusivity-backend/pkg/config"
	"github.com/epc-retail/exclusivity-backend/pkg/metrics"
)

// Service turns an export request into a finished workbook.
type Service interface {
	Export(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	cfg     config.ExportConfig
	metrics *metrics.ExportMetrics
	now     func() time.Time
}

// NewService constructs the export service. metrics may be nil in tests.
func NewService(cfg config.ExportConfig, exportMetrics *metrics.ExportMetrics) (Service, error) {
	if cfg.SourceWarehouse == "" {
		return nil, fmt.Errorf("source warehouse required")
	}
	return &service{
		cfg:     cfg,
		metrics: exportMetrics,
		now:     time.Now,
	}, nil
}

func (s *service) Export(ctx context.Context, req Request) (*Result, error) {
	rows, err := GenerateRows(req.Branches, req.Items, req.Quantities, req.Filters, s.cfg.SourceWarehouse)
	if err != nil {
		s.metrics.IncEmpty(req.Filters.Chain)
		return nil, err
	}

	content, err := BuildWorkbook(rows)
	if err != nil {
		return nil, err
	}

	s.metrics.IncGenerated(req.Filters.Chain, len(rows))
	return &Result{
		Filename: Filename(req.Filters, s.now()),
		Content:  content,
		RowCount: len(rows),
	}, nil
}
