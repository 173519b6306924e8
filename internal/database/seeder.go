package database

import (
	"context"
	"errors"
	"log"

	"transparencia-salud-server/config"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"
)

// demo ledger shipped with the original dataset
var demoHospitales = []models.Hospital{
	{Nombre: "Hospital San José", Ciudad: "Bogotá", RecursosAsignados: 120000000, RecursosUsados: 85000000},
	{Nombre: "Clínica del Norte", Ciudad: "Medellín", RecursosAsignados: 95000000, RecursosUsados: 72000000},
	{Nombre: "Hospital Central de Cali", Ciudad: "Cali", RecursosAsignados: 105000000, RecursosUsados: 95000000},
	{Nombre: "Hospital Regional de Suba", Ciudad: "Bogotá", RecursosAsignados: 80000000, RecursosUsados: 40000000},
}

// SeedHospitals fills an empty ledger with the demo records so the public
// dashboard has content on first boot.
func SeedHospitals(ctx context.Context, st store.Store) error {
	existing, err := st.ListHospitals(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Hospital ledger not empty. Seeding skipped.")
		return nil
	}

	log.Println("Hospital ledger empty. Seeding demo records...")
	for _, h := range demoHospitales {
		if _, err := st.CreateHospital(ctx, h); err != nil {
			return err
		}
	}
	log.Println("Hospital ledger seeded successfully.")
	return nil
}

// SeedAdmin creates the configured administrator account if it does not
// exist yet. No-op when seeding is not configured.
func SeedAdmin(ctx context.Context, st store.Store, cfg config.SeedConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = st.CreateUser(ctx, models.Usuario{
		Email:        cfg.AdminEmail,
		Nombre:       "Administrador",
		PasswordHash: hashed,
		EsActivo:     true,
		EsAdmin:      true,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			log.Println("Admin account already exists. Seeding skipped.")
			return nil
		}
		return err
	}

	log.Printf("Admin account %s seeded successfully.", cfg.AdminEmail)
	return nil
}
