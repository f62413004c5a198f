package main

import (
	"fmt"
	"log"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/database"
	"github.com/finbook/finbook/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	_ "github.com/finbook/finbook/docs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Finbook server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	r := router.New(cfg, db)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Finbook server on %s", addr)
	return r.Run(addr)
}
