package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

type stubAdvisor struct {
	advisory airquality.Advisory
	entries  []airquality.QueryEntry
	err      error
}

func (s *stubAdvisor) Advise(_ context.Context, _ airquality.Request) (airquality.Advisory, error) {
	if s.err != nil {
		return airquality.Advisory{}, s.err
	}
	return s.advisory, nil
}

func (s *stubAdvisor) RecentQueries(_ context.Context) ([]airquality.QueryEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func newTestRouter(svc airquality.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(svc, logger)

	router := gin.New()
	router.Use(errorHandlingMiddleware(logger))
	router.POST("/api/v1/advisories", handler.Advise)
	router.GET("/api/v1/advisories/recent", handler.RecentQueries)
	return router
}

func TestAdviseEndpointSuccess(t *testing.T) {
	svc := &stubAdvisor{advisory: airquality.Advisory{
		Severity: airquality.SeverityUnhealthy,
		Message:  "Air quality is poor.",
		Trend:    airquality.TrendRising,
		Anomaly:  true,
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisories", strings.NewReader(`{"location":"Chennai","sensitiveGroup":false}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unhealthy", body["severity"])
	require.Equal(t, "rising", body["trend"])
	require.Equal(t, true, body["anomaly"])
}

func TestAdviseEndpointInvalidInput(t *testing.T) {
	svc := &stubAdvisor{err: apperrors.Wrap("invalid_input", "location must not be empty", nil)}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisories", strings.NewReader(`{"location":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_request")
}

func TestAdviseEndpointDataUnavailable(t *testing.T) {
	svc := &stubAdvisor{err: apperrors.Wrap("data_unavailable", "no air quality data available for Chennai", nil)}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisories", strings.NewReader(`{"location":"Chennai"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "data_unavailable")
}

func TestAdviseEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(&stubAdvisor{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisories", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentQueriesEndpoint(t *testing.T) {
	svc := &stubAdvisor{entries: []airquality.QueryEntry{
		{ID: "abc", Location: "Chennai", Severity: airquality.SeverityModerate},
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisories/recent", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"abc"`)
	require.Contains(t, rec.Body.String(), `"moderate"`)
}
