// Package ledger holds the aggregation over hospital resource records that
// feeds the dashboard and the public summary endpoint.
package ledger

import (
	"math"

	"transparencia-salud-server/internal/models"
)

type Summary struct {
	TotalAsignado float64 `json:"total_asignado"`
	TotalUsado    float64 `json:"total_usado"`
	PorcentajeUso float64 `json:"porcentaje_uso"`
}

// Summarize sums allocation and usage over all records. The usage percentage
// is rounded to two decimals and defined as 0 when nothing is allocated.
func Summarize(hospitales []models.Hospital) Summary {
	var s Summary
	for _, h := range hospitales {
		s.TotalAsignado += h.RecursosAsignados
		s.TotalUsado += h.RecursosUsados
	}
	if s.TotalAsignado > 0 {
		s.PorcentajeUso = math.Round(s.TotalUsado/s.TotalAsignado*100*100) / 100
	}
	return s
}
