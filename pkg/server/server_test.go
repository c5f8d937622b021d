package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/library-reports/pkg/models/api"
	"github.com/de-tools/library-reports/pkg/models/store"
	"github.com/de-tools/library-reports/pkg/server/middleware"
	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Query(ctx context.Context, query string, args ...any) ([]store.Record, error) {
	called := m.Called(ctx, query, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]store.Record), called.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	executor := new(mockExecutor)
	svc, err := reports.NewService(reports.DefaultRegistry(), executor)
	require.NoError(t, err)

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports: svc,
		},
	})
	testServer := httptest.NewServer(webAPI.Handler())
	defer testServer.Close()

	loanedAt := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListReports",
			path:           "/api/v1/reports",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected: []api.Report{
				{ID: "1", Title: "Most Borrowed Books", Description: "Overall ranking. Supports search and pagination.", Filters: []string{"search"}},
				{ID: "2", Title: "Overdue Loans", Description: "Late loans and computed fines. Filter by days overdue.", Filters: []string{"min_days"}},
				{ID: "3", Title: "Monthly Fines Summary", Description: "Monthly fine income, collected and pending.", Filters: []string{}},
				{ID: "4", Title: "Member Activity", Description: "Active members and their late return rate.", Filters: []string{}},
				{ID: "5", Title: "Inventory Health", Description: "Physical condition of copies by category.", Filters: []string{}},
			},
			parseResponse: unmarshalResponse[[]api.Report](),
		},
		{
			name: "GetReport_SearchSecondPage",
			path: "/api/v1/reports/1?search=Clean&page=2",
			setupMocks: func() {
				executor.On("Query",
					mock.Anything,
					"SELECT * FROM vw_most_borrowed_books WHERE (title ILIKE $1 OR author ILIKE $2) LIMIT $3 OFFSET $4",
					[]any{"%Clean%", "%Clean%", 10, 10},
				).Return([]store.Record{{
					{Name: "title", Value: "Clean Code"},
					{Name: "author", Value: "Robert C. Martin"},
					{Name: "last_loan", Value: loanedAt},
					{Name: "rating", Value: nil},
				}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected: api.ReportPage{
				ID:       "1",
				Title:    "Most Borrowed Books",
				Page:     2,
				PageSize: 10,
				Columns:  []string{"title", "author", "last_loan", "rating"},
				Rows:     [][]string{{"Clean Code", "Robert C. Martin", "2024-02-01", "-"}},
				Filters:  api.ReportFilters{Search: strPtr("Clean")},
				Links: api.ReportLinks{
					Self:     "/api/v1/reports/1?page=2&search=Clean",
					Previous: "/api/v1/reports/1?page=1&search=Clean",
				},
			},
			parseResponse: unmarshalResponse[api.ReportPage](),
		},
		{
			name:           "GetReport_Unknown",
			path:           "/api/v1/reports/9",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotFound,
			expected:       api.Error{Error: "report not found"},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "GetReport_InvalidPage",
			path:           "/api/v1/reports/1?page=abc",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: "invalid parameters", Fields: []string{"page"}},
			parseResponse:  unmarshalResponse[api.Error](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	executor.AssertExpectations(t)
}

func TestWebAPI_RequestIDPropagation(t *testing.T) {
	webAPI := NewWebAPI(zerolog.Nop(), Config{
		Dependencies: Dependencies{Reports: mustService(t)},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	webAPI.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
}

func mustService(t *testing.T) reports.Service {
	svc, err := reports.NewService(reports.DefaultRegistry(), new(mockExecutor))
	require.NoError(t, err)
	return svc
}

func strPtr(v string) *string { return &v }

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
