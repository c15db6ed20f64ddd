package server

import (
	"errors"
	"net/http"
	"strings"

	"pharmacy-distance/internal/calculator"
	"pharmacy-distance/internal/models"
	"pharmacy-distance/internal/prompt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NearestRequest mirrors the interactive questions.
type NearestRequest struct {
	State  string `json:"state" binding:"required"`
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	ZIP    string `json:"zip" binding:"required"`
}

type NearestResponse struct {
	RequestID string                  `json:"request_id"`
	Query     models.PatientQuery     `json:"query"`
	Results   []models.RankedPharmacy `json:"results"`
}

type Handler struct {
	pharmacies []models.Pharmacy
	ranker     *calculator.Ranker
	logger     *zap.SugaredLogger
}

func NewHandler(pharmacies []models.Pharmacy, ranker *calculator.Ranker, logger *zap.SugaredLogger) *Handler {
	return &Handler{pharmacies: pharmacies, ranker: ranker, logger: logger}
}

// NewRouter wires the handler into a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLoggingMiddleware(h.logger), RecoveryMiddleware(h.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/states", h.States)
		v1.POST("/nearest", h.Nearest)
	}
	return r
}

// States lists the state codes present in the roster.
func (h *Handler) States(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": models.States(h.pharmacies)})
}

// Nearest ranks the roster against the posted patient address. A failed
// distance lookup yields an empty result list, as in the interactive tool.
func (h *Handler) Nearest(c *gin.Context) {
	var req NearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state, street, city and zip are required"})
		return
	}

	state := strings.ToUpper(strings.TrimSpace(req.State))
	candidates := models.FilterByState(h.pharmacies, state)
	if len(candidates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": prompt.MessageNoPharmacies})
		return
	}

	query := models.PatientQuery{
		Address: models.FormatAddress(strings.TrimSpace(req.Street), strings.TrimSpace(req.City), state, strings.TrimSpace(req.ZIP)),
		State:   state,
	}

	results, err := h.ranker.Nearest(c.Request.Context(), candidates, query.Address)
	if err != nil {
		if !errors.Is(err, calculator.ErrDistanceFetch) {
			h.logger.Errorw("ranking failed", "request_id", c.GetString("request_id"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		h.logger.Warnw("distance lookup failed", "request_id", c.GetString("request_id"), "state", state, "error", err)
		results = []models.RankedPharmacy{}
	}

	c.JSON(http.StatusOK, NearestResponse{
		RequestID: c.GetString("request_id"),
		Query:     query,
		Results:   results,
	})
}
