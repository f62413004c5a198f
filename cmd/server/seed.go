package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/database"
	"github.com/finbook/finbook/internal/repository"
	"github.com/finbook/finbook/internal/services"
	"github.com/spf13/cobra"
)

type SeedEvent struct {
	Value int64  `json:"value"`
	Type  string `json:"type"`
}

type SeedUser struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Events   []SeedEvent `json:"events"`
}

var (
	seedFile    string
	skipInvalid bool
	strictMode  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed users and events from a JSON file",
	Long: `Load fixture users and their financial events from a JSON file.

Expected JSON format:
[
  {
    "name": "Alice",
    "email": "alice@example.com",
    "password": "secret",
    "events": [
      {"value": 100, "type": "INCOME"},
      {"value": 40, "type": "OUTCOME"}
    ]
  }
]

By default, invalid entries are skipped. Use --strict to fail on the
first validation error instead.`,
	Example: `  finbook seed -f fixtures.json
  finbook seed --file fixtures.json --strict`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "JSON file to load (required)")
	seedCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", true, "Skip invalid entries")
	seedCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	seedCmd.MarkFlagRequired("file")
}

func runSeed() error {
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	tokenService := services.NewTokenService(cfg.JWT.Secret)
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(eventRepo)

	log.Printf("Seeding %d users from %s", len(users), seedFile)

	seeded, skipped, err := seedUsers(users, authService, ledgerService)
	if err != nil {
		return err
	}

	log.Printf("Seed complete: %d users loaded, %d skipped", seeded, skipped)
	return nil
}

func seedUsers(users []SeedUser, authService *services.AuthService, ledgerService *services.LedgerService) (int, int, error) {
	seeded := 0
	skipped := 0

	for _, u := range users {
		if err := seedUser(u, authService, ledgerService); err != nil {
			if strictMode || !skipInvalid {
				return seeded, skipped, fmt.Errorf("seed failed for %s: %w", u.Email, err)
			}
			log.Printf("Skipped %s: %v", u.Email, err)
			skipped++
			continue
		}
		seeded++
	}

	return seeded, skipped, nil
}

func seedUser(u SeedUser, authService *services.AuthService, ledgerService *services.LedgerService) error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" || u.Password == "" {
		return fmt.Errorf("name, email and password are required")
	}

	user, err := authService.SignUp(u.Name, u.Email, u.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return fmt.Errorf("email already registered")
		}
		return err
	}

	for _, e := range u.Events {
		if err := ledgerService.Record(user.ID, e.Value, e.Type); err != nil {
			return fmt.Errorf("event {%d %s}: %w", e.Value, e.Type, err)
		}
	}

	log.Printf("Seeded %s with %d events", u.Email, len(u.Events))
	return nil
}
