package handlers

import (
	"net/http"

	"telemetry_demo/internal/models"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errIngest          = "failed to ingest reading"
	errGetLatest       = "failed to load latest reading"
	errGetEvents       = "failed to load events"
	errInvalidBodyPref = "invalid body: "
)

// ingestRequest uses pointers so that a missing field is distinguishable from 0.
type ingestRequest struct {
	Pressure *float64 `json:"pressure" binding:"required"`
	Temp     *float64 `json:"temp" binding:"required"`
	Vib      *float64 `json:"vib" binding:"required"`
	Status   string   `json:"status"` // defaults to OK
}

func (r ingestRequest) toReading() models.Reading {
	status := r.Status
	if status == "" {
		status = models.StatusOK
	}
	return models.Reading{
		Pressure: *r.Pressure,
		Temp:     *r.Temp,
		Vib:      *r.Vib,
		Status:   status,
	}
}

// IngestRequest is an exported model for Swagger docs of the ingest payload.
type IngestRequest struct {
	Pressure float64 `json:"pressure" example:"8.02"`
	Temp     float64 `json:"temp" example:"45.3"`
	Vib      float64 `json:"vib" example:"0.81"`
	// Optional, defaults to OK
	Status string `json:"status,omitempty" example:"OK"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Ingest a reading
// @Description  Overwrites the latest reading; logs a transition when status changes
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body      IngestRequest  true  "Reading"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /ingest [post]
func (h *Handler) ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("ingest_bad_request_body", "err", err, "request_id", c.GetString(requestIDKey))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Telemetry.Ingest(c.Request.Context(), req.toReading()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errIngest, "ingest_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Latest reading
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  models.LatestState
// @Failure      500  {object}  map[string]string
// @Router       /latest [get]
func (h *Handler) getLatest(c *gin.Context) {
	st, err := h.services.Telemetry.GetLatest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetLatest, "get_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Transition log
// @Description  Up to 50 entries, oldest first
// @Tags         telemetry
// @Produce      json
// @Success      200  {array}   models.Event
// @Failure      500  {object}  map[string]string
// @Router       /events [get]
func (h *Handler) getEvents(c *gin.Context) {
	events, err := h.services.EventLog.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetEvents, "get_events_failed", err)
		return
	}
	c.JSON(http.StatusOK, events)
}
