package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"transparencia-salud-server/internal/ledger"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/socket"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	Store store.Store
	Hub   *socket.Hub
}

// HospitalRequest is the JSON body for create and update. The amounts are
// pointers so an explicit 0 still satisfies the required binding.
type HospitalRequest struct {
	Nombre            string   `json:"nombre" binding:"required"`
	Ciudad            string   `json:"ciudad" binding:"required"`
	RecursosAsignados *float64 `json:"recursos_asignados" binding:"required"`
	RecursosUsados    *float64 `json:"recursos_usados" binding:"required"`
}

// LedgerEvent is broadcast to dashboard clients after every mutation.
type LedgerEvent struct {
	Tipo     string           `json:"tipo"`
	Hospital *models.Hospital `json:"hospital,omitempty"`
	Resumen  ledger.Summary   `json:"resumen"`
}

// Agregar creates a hospital record and returns it with its assigned id.
func (h *HospitalHandler) Agregar(c *gin.Context) {
	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hospital, err := h.Store.CreateHospital(c.Request.Context(), models.Hospital{
		Nombre:            req.Nombre,
		Ciudad:            req.Ciudad,
		RecursosAsignados: *req.RecursosAsignados,
		RecursosUsados:    *req.RecursosUsados,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el hospital"})
		return
	}

	h.notify(c.Request.Context(), "hospital_creado", &hospital)
	c.JSON(http.StatusCreated, hospital)
}

// Actualizar overwrites every mutable field of an existing record.
func (h *HospitalHandler) Actualizar(c *gin.Context) {
	id := c.Param("id")

	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hospital, err := h.Store.UpdateHospital(c.Request.Context(), id, models.Hospital{
		Nombre:            req.Nombre,
		Ciudad:            req.Ciudad,
		RecursosAsignados: *req.RecursosAsignados,
		RecursosUsados:    *req.RecursosUsados,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hospital no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el hospital"})
		return
	}

	h.notify(c.Request.Context(), "hospital_actualizado", &hospital)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *HospitalHandler) Eliminar(c *gin.Context) {
	id := c.Param("id")

	if err := h.Store.DeleteHospital(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hospital no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el hospital"})
		return
	}

	h.notify(c.Request.Context(), "hospital_eliminado", nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Listar is the public JSON listing of the ledger.
func (h *HospitalHandler) Listar(c *gin.Context) {
	hospitales, err := h.Store.ListHospitals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron consultar los hospitales"})
		return
	}
	if hospitales == nil {
		hospitales = []models.Hospital{}
	}
	c.JSON(http.StatusOK, hospitales)
}

// Resumen is the public aggregate over the whole ledger.
func (h *HospitalHandler) Resumen(c *gin.Context) {
	hospitales, err := h.Store.ListHospitals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron consultar los hospitales"})
		return
	}
	c.JSON(http.StatusOK, ledger.Summarize(hospitales))
}

// notify broadcasts the mutation plus a fresh summary to dashboard clients.
// Best effort: a broken broadcast never fails the request that caused it.
func (h *HospitalHandler) notify(ctx context.Context, tipo string, hospital *models.Hospital) {
	if h.Hub == nil {
		return
	}
	hospitales, err := h.Store.ListHospitals(ctx)
	if err != nil {
		log.Printf("ledger broadcast skipped: %v", err)
		return
	}
	payload, err := json.Marshal(LedgerEvent{
		Tipo:     tipo,
		Hospital: hospital,
		Resumen:  ledger.Summarize(hospitales),
	})
	if err != nil {
		return
	}
	h.Hub.Broadcast(payload)
}
