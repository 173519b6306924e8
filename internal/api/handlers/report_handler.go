package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"transparencia-salud-server/internal/ledger"
	"transparencia-salud-server/internal/s3"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Store    store.Store
	Uploader *s3.Uploader
}

// Publicar renders the full ledger as CSV and publishes it to the configured
// bucket. Returns 503 when no bucket is configured.
func (h *ReportHandler) Publicar(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "La publicación de reportes no está configurada"})
		return
	}

	hospitales, err := h.Store.ListHospitals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron consultar los hospitales"})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"nombre", "ciudad", "recursos_asignados", "recursos_usados"})
	for _, hosp := range hospitales {
		w.Write([]string{
			hosp.Nombre,
			hosp.Ciudad,
			strconv.FormatFloat(hosp.RecursosAsignados, 'f', 2, 64),
			strconv.FormatFloat(hosp.RecursosUsados, 'f', 2, 64),
		})
	}
	resumen := ledger.Summarize(hospitales)
	w.Write([]string{
		"TOTAL",
		"",
		strconv.FormatFloat(resumen.TotalAsignado, 'f', 2, 64),
		strconv.FormatFloat(resumen.TotalUsado, 'f', 2, 64),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el reporte"})
		return
	}

	objectKey := fmt.Sprintf("reportes/transparencia-%s.csv", time.Now().UTC().Format("20060102-150405"))
	url, err := h.Uploader.UploadReport(c.Request.Context(), &buf, objectKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo publicar el reporte"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "url": url})
}
