package reports

import (
	"context"
	"errors"
	"net/url"

	"github.com/de-tools/library-reports/pkg/models/domain"
	"github.com/de-tools/library-reports/pkg/models/store"
	"github.com/rs/zerolog"
)

// Executor runs SQL with positional arguments and returns the rows in order.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) ([]store.Record, error)
}

type Service interface {
	// List returns every available report.
	List(ctx context.Context) []domain.ReportDescriptor
	// Run resolves, validates, queries and shapes one page of a report.
	Run(ctx context.Context, reportID string, values url.Values) (*domain.ReportPage, error)
}

type service struct {
	registry *Registry
	executor Executor
}

func NewService(registry *Registry, executor Executor) (Service, error) {
	if registry == nil {
		return nil, errors.New("report registry is nil")
	}
	if executor == nil {
		return nil, errors.New("query executor is nil")
	}
	return &service{
		registry: registry,
		executor: executor,
	}, nil
}

func (s *service) List(_ context.Context) []domain.ReportDescriptor {
	return s.registry.List()
}

func (s *service) Run(ctx context.Context, reportID string, values url.Values) (*domain.ReportPage, error) {
	logger := zerolog.Ctx(ctx)

	desc, err := s.registry.Resolve(reportID)
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest(reportID, values)
	if err != nil {
		return nil, err
	}

	query := Compose(desc, req)
	logger.Debug().
		Str("report", desc.ID).
		Str("sql", query.SQL).
		Int("args", len(query.Args)).
		Msg("executing report query")

	records, err := s.executor.Query(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, &ExecutionError{ReportID: desc.ID, Err: err}
	}

	result := Shape(records)
	return &domain.ReportPage{
		Report:      desc,
		Request:     req,
		Result:      result,
		PageSize:    PageSize,
		HasPrevious: req.Page > 1,
		HasNext:     len(result.Rows) == PageSize && req.Page < MaxPage,
	}, nil
}
