package handlers

import (
	"net/http"

	"transparencia-salud-server/internal/api/middleware"
	"transparencia-salud-server/internal/ledger"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
)

type PanelHandler struct {
	Store    store.Store
	Sessions *middleware.SessionResolver
}

func (h *PanelHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Panel renders the dashboard: the full hospital list plus aggregate totals.
// Anonymous visitors are redirected to the login page, not rejected.
func (h *PanelHandler) Panel(c *gin.Context) {
	user := h.Sessions.Resolve(c)
	if user == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	hospitales, err := h.Store.ListHospitals(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "panel.html", gin.H{
			"usuario": user,
			"error":   "No se pudieron consultar los hospitales",
		})
		return
	}

	resumen := ledger.Summarize(hospitales)
	c.HTML(http.StatusOK, "panel.html", gin.H{
		"usuario":        user,
		"hospitales":     hospitales,
		"total_asignado": resumen.TotalAsignado,
		"total_usado":    resumen.TotalUsado,
		"porcentaje":     resumen.PorcentajeUso,
	})
}
