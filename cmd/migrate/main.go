package main

import (
	"log"
	"os"

	"medicab-be/internal/model"
	"medicab-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// Extensions and enums first; AutoMigrate does not manage these.
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'subscription_status') THEN CREATE TYPE subscription_status AS ENUM ('TRIALING', 'ACTIVE', 'CANCELED'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('ADMIN', 'PRACTITIONER', 'ASSISTANT'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'speciality') THEN CREATE TYPE speciality AS ENUM ('physiotherapy', 'dental', 'general', 'cardiology'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'appointment_status') THEN CREATE TYPE appointment_status AS ENUM ('SCHEDULED', 'COMPLETED', 'CANCELED', 'NO_SHOW'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'treatment_status') THEN CREATE TYPE treatment_status AS ENUM ('ONGOING', 'COMPLETED', 'ABORTED'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'medical_record_type') THEN CREATE TYPE medical_record_type AS ENUM ('CONSULTATION', 'DIAGNOSIS', 'PRESCRIPTION'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate for 9 Tables...")

	models := []interface{}{
		&model.Cabinet{},
		&model.User{},
		&model.Plan{},
		&model.Subscription{},
		&model.Patient{},
		&model.Appointment{},
		&model.Treatment{},
		&model.MedicalRecord{},
		&model.Tariff{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating Indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_practitioner_starts ON appointments (practitioner_id, starts_at);`,
		`CREATE INDEX IF NOT EXISTS idx_medical_records_patient_recorded ON medical_records (patient_id, recorded_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_patients_cabinet_last_name ON patients (cabinet_id, last_name);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed successfully.")
}
