package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

// Handler wires the HTTP transport to the advisor domain.
type Handler struct {
	advisorSvc airquality.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorSvc airquality.Service, logger *slog.Logger) *Handler {
	return &Handler{
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Advise resolves, analyzes and formats an advisory for a location.
func (h *Handler) Advise(c *gin.Context) {
	var req airquality.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.advisorSvc.Advise(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "advise_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "data_unavailable"):
			status = http.StatusBadGateway
			code = "data_unavailable"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecentQueries lists the latest served advisories.
func (h *Handler) RecentQueries(c *gin.Context) {
	items, err := h.advisorSvc.RecentQueries(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "querylog_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": items})
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
