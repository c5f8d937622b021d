package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/library-reports/pkg/models/api"
	"github.com/de-tools/library-reports/pkg/models/domain"
	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	reports reports.Service
}

func NewHandler(svc reports.Service) *Handler {
	return &Handler{reports: svc}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	descriptors := h.reports.List(ctx)
	response := make([]api.Report, 0, len(descriptors))
	for _, d := range descriptors {
		filters := make([]string, 0, len(d.Filters))
		for _, f := range d.Filters {
			filters = append(filters, string(f.Kind))
		}
		response = append(response, api.Report{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Filters:     filters,
		})
	}

	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	page, err := h.reports.Run(ctx, id, r.URL.Query())
	if err != nil {
		var verr *reports.ValidationError
		switch {
		case errors.Is(err, reports.ErrReportNotFound):
			writeJSON(w, r, http.StatusNotFound, api.Error{Error: "report not found"})
		case errors.As(err, &verr):
			writeJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid parameters", Fields: verr.Fields()})
		default:
			logger.Error().
				Err(err).
				Str("report", id).
				Msg("failed to run report")
			writeJSON(w, r, http.StatusInternalServerError, api.Error{Error: "failed to load report"})
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toAPIPage(r.URL.Path, page))
}

func toAPIPage(path string, page *domain.ReportPage) api.ReportPage {
	rows := make([][]string, 0, len(page.Result.Rows))
	for _, row := range page.Result.Rows {
		cells := make([]string, 0, len(page.Result.Columns))
		for _, col := range page.Result.Columns {
			cells = append(cells, row[col])
		}
		rows = append(rows, cells)
	}

	req := page.Request
	links := api.ReportLinks{Self: pageLink(path, req, req.Page)}
	if page.HasPrevious {
		links.Previous = pageLink(path, req, req.Page-1)
	}
	if page.HasNext {
		links.Next = pageLink(path, req, req.Page+1)
	}

	return api.ReportPage{
		ID:       page.Report.ID,
		Title:    page.Report.Title,
		Page:     req.Page,
		PageSize: page.PageSize,
		Columns:  page.Result.Columns,
		Rows:     rows,
		Empty:    len(rows) == 0,
		Filters: api.ReportFilters{
			Search:  req.Search,
			MinDays: req.MinDays,
		},
		Links: links,
	}
}

// pageLink keeps the active filters so navigation does not drop them.
func pageLink(path string, req domain.ReportRequest, page int) string {
	q := url.Values{}
	q.Set(reports.ParamPage, strconv.Itoa(page))
	if req.Search != nil {
		q.Set(reports.ParamSearch, *req.Search)
	}
	if req.MinDays != nil {
		q.Set(reports.ParamMinDays, strconv.Itoa(*req.MinDays))
	}
	return path + "?" + q.Encode()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
