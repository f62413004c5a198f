package main

import (
	"encoding/json"
	"testing"

	"github.com/finbook/finbook/internal/database"
	"github.com/finbook/finbook/internal/repository"
	"github.com/finbook/finbook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSeedTest(t *testing.T) (*repository.UserRepository, *services.AuthService, *services.LedgerService) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	tokenService := services.NewTokenService("test-secret")
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(eventRepo)

	// Flag defaults, restored after each test.
	skipInvalid = true
	strictMode = false
	t.Cleanup(func() {
		skipInvalid = true
		strictMode = false
	})

	return userRepo, authService, ledgerService
}

const seedFixture = `[
  {
    "name": "Alice",
    "email": "alice@example.com",
    "password": "hunter2",
    "events": [
      {"value": 100, "type": "INCOME"},
      {"value": 40, "type": "OUTCOME"}
    ]
  },
  {
    "name": "Bob",
    "email": "bob@example.com",
    "password": "swordfish",
    "events": []
  }
]`

func TestSeedUsers_FixtureRoundTrip(t *testing.T) {
	userRepo, authService, ledgerService := setupSeedTest(t)

	var users []SeedUser
	require.NoError(t, json.Unmarshal([]byte(seedFixture), &users))

	seeded, skipped, err := seedUsers(users, authService, ledgerService)
	assert.NoError(t, err)
	assert.Equal(t, 2, seeded)
	assert.Equal(t, 0, skipped)

	alice, err := userRepo.FindByEmail("alice@example.com")
	assert.NoError(t, err)
	require.NotNil(t, alice)

	balance, err := ledgerService.Balance(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(60), balance)

	// Seeded credentials go through the normal sign-in path.
	_, err = authService.SignIn("bob@example.com", "swordfish")
	assert.NoError(t, err)
}

func TestSeedUsers_SkipsInvalidEntries(t *testing.T) {
	userRepo, authService, ledgerService := setupSeedTest(t)

	users := []SeedUser{
		{Name: "Alice", Email: "alice@example.com", Password: "hunter2"},
		{Name: "No Email", Email: "", Password: "secret"},
	}

	seeded, skipped, err := seedUsers(users, authService, ledgerService)
	assert.NoError(t, err)
	assert.Equal(t, 1, seeded)
	assert.Equal(t, 1, skipped)

	alice, err := userRepo.FindByEmail("alice@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, alice)
}

func TestSeedUsers_StrictMode(t *testing.T) {
	_, authService, ledgerService := setupSeedTest(t)
	strictMode = true

	users := []SeedUser{
		{Name: "No Email", Email: "", Password: "secret"},
		{Name: "Alice", Email: "alice@example.com", Password: "hunter2"},
	}

	seeded, _, err := seedUsers(users, authService, ledgerService)
	assert.Error(t, err)
	assert.Equal(t, 0, seeded)
}

func TestSeedUsers_NoSkipInvalid(t *testing.T) {
	_, authService, ledgerService := setupSeedTest(t)
	skipInvalid = false

	users := []SeedUser{
		{Name: "No Email", Email: "", Password: "secret"},
	}

	_, _, err := seedUsers(users, authService, ledgerService)
	assert.Error(t, err)
}

func TestSeedUser_RejectsBadEvent(t *testing.T) {
	_, authService, ledgerService := setupSeedTest(t)

	err := seedUser(SeedUser{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2",
		Events:   []SeedEvent{{Value: 100, Type: "OTHER"}},
	}, authService, ledgerService)
	assert.Error(t, err)
}

func TestSeedUser_RejectsDuplicateEmail(t *testing.T) {
	_, authService, ledgerService := setupSeedTest(t)

	u := SeedUser{Name: "Alice", Email: "alice@example.com", Password: "hunter2"}
	require.NoError(t, seedUser(u, authService, ledgerService))
	assert.Error(t, seedUser(u, authService, ledgerService))
}
