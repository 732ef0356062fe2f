// Package main seeds initial configuration: default number format templates
// and the seller's company profile.
package main

import (
	"context"
	"fmt"
	"os"

	"billmint/internal/core/docnum"
	"billmint/internal/domain/settings"
	"billmint/internal/domain/tax"
	"billmint/internal/infrastructure/storage/postgres"
	"billmint/internal/infrastructure/storage/postgres/settings_repo"
	"billmint/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	svc := settings.NewService(settings_repo.NewSettingsRepo(txManager))

	err = svc.SetDocumentSettings(ctx, settings.DocumentSettings{
		InvoiceFormat:   docnum.DefaultInvoiceTemplate,
		QuotationFormat: docnum.DefaultQuotationTemplate,
	})
	if err != nil {
		log.Fatalw("failed to seed document settings", "error", err)
	}

	stateCode := os.Getenv("COMPANY_STATE_CODE")
	if stateCode != "" {
		err = svc.SetCompanyProfile(ctx, tax.Profile{
			StateCode: stateCode,
			Country:   "India",
		})
		if err != nil {
			log.Fatalw("failed to seed company profile", "error", err)
		}
	}

	log.Info("seed completed")
}
