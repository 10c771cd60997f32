package main

import (
	"context"
	"log"
	"os"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/implementation"
	"medicab-be/internal/repository/specification"
	"medicab-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func strPtr(s string) *string { return &s }

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := implementation.NewSubscriptionRepository(db)

	plans := []*entity.Plan{
		{
			Id:           uuid.New(),
			DisplayName:  "Découverte",
			Slug:         "decouverte",
			DurationDays: entity.TrialDays,
			MaxPatients:  entity.DefaultMaxPatients,
			PriceCents:   0,
			IsTrial:      true,
			IsActive:     true,
			SortOrder:    0,
		},
		{
			Id:            uuid.New(),
			DisplayName:   "Essentiel",
			Slug:          "essentiel",
			DurationDays:  30,
			MaxPatients:   100,
			PriceCents:    2900,
			StripePriceId: strPtr("price_essentiel_monthly"),
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Id:            uuid.New(),
			DisplayName:   "Cabinet",
			Slug:          "cabinet",
			DurationDays:  30,
			MaxPatients:   500,
			PriceCents:    4900,
			StripePriceId: strPtr("price_cabinet_monthly"),
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Id:            uuid.New(),
			DisplayName:   "Clinique",
			Slug:          "clinique",
			DurationDays:  30,
			MaxPatients:   -1, // unlimited
			PriceCents:    9900,
			StripePriceId: strPtr("price_clinique_monthly"),
			IsActive:      true,
			SortOrder:     3,
		},
	}

	color.Cyan("Seeding plan catalog (%d plans)...", len(plans))

	for _, plan := range plans {
		existing, err := repo.FindOnePlan(ctx, specification.Filter("slug", plan.Slug))
		if err != nil {
			color.Red("Error: lookup failed for plan %q: %v", plan.Slug, err)
			os.Exit(1)
		}
		if existing != nil {
			color.Yellow("  skip  %-12s (already seeded)", plan.Slug)
			continue
		}
		if err := repo.CreatePlan(ctx, plan); err != nil {
			color.Red("Error: failed to create plan %q: %v", plan.Slug, err)
			os.Exit(1)
		}
		color.Green("  added %-12s max_patients=%d price=%d", plan.Slug, plan.MaxPatients, plan.PriceCents)
	}

	color.Cyan("Done.")
}
