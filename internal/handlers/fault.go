package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errSetFault = "failed to set fault mode"
	errGetFault = "failed to load fault mode"
)

// @Summary      Enable fault injection
// @Tags         fault
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Router       /fault/on [post]
// @Security     BearerAuth
func (h *Handler) faultOn(c *gin.Context) { h.setFault(c, true) }

// @Summary      Disable fault injection
// @Tags         fault
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Router       /fault/off [post]
// @Security     BearerAuth
func (h *Handler) faultOff(c *gin.Context) { h.setFault(c, false) }

func (h *Handler) setFault(c *gin.Context, on bool) {
	got, err := h.services.Fault.SetFault(c.Request.Context(), on)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetFault, "set_fault_failed", err, "on", on)
		return
	}
	if h.log != nil {
		h.log.Infow("fault_mode_set", "fault_mode", got, "subject", c.GetString(subjectKey))
	}
	c.JSON(http.StatusOK, gin.H{"fault_mode": got})
}

// @Summary      Fault injection state
// @Tags         fault
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /fault [get]
func (h *Handler) getFault(c *gin.Context) {
	on, err := h.services.Fault.GetFault(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetFault, "get_fault_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fault_mode": on})
}
