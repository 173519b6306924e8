package models

import "time"

// Hospital is one resource-allocation record of the public ledger.
// RecursosAsignados and RecursosUsados are monetary amounts in COP.
// Nothing enforces usados <= asignados; over-execution is real data and the
// dashboard is expected to show it.
type Hospital struct {
	ID                string    `json:"id"`
	Nombre            string    `json:"nombre"`
	Ciudad            string    `json:"ciudad"`
	RecursosAsignados float64   `json:"recursos_asignados"`
	RecursosUsados    float64   `json:"recursos_usados"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
