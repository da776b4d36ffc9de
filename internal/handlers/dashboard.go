package handlers

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

const dashboardFile = "web/dashboard.html"

func (h *Handler) registerDashboardRoutes(r *gin.Engine) {
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		// the embed pattern above guarantees the directory exists
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))
	r.GET("/dashboard", h.dashboard)
}

// @Summary      Dashboard page
// @Tags         system
// @Produce      html
// @Success      200
// @Router       /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	page, err := webFS.ReadFile(dashboardFile)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "dashboard unavailable", "dashboard_read_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
