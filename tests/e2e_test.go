package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type finbookContainer struct {
	testcontainers.Container
	URI string
}

func setupFinbook(ctx context.Context, t *testing.T) (*finbookContainer, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "test-secret"
	}

	natPort := nat.Port(port + "/tcp")

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    "../",
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{string(natPort)},
		Env: map[string]string{
			"PORT":               port,
			"GIN_MODE":           "release",
			"DATABASE_URL":       "sqlite::memory:",
			"JWT_SECRET":         jwtSecret,
			"EXPORT_SIGNING_KEY": "e2e-export-key",
		},
		WaitingFor: wait.ForHTTP("/financial-events").
			WithPort(natPort).
			WithStatusCodeMatcher(func(status int) bool {
				// Unauthenticated requests get a 401 once the server is up.
				return status == http.StatusUnauthorized
			}).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	var finbookC *finbookContainer
	if container != nil {
		finbookC = &finbookContainer{Container: container}
	}
	if err != nil {
		return finbookC, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return finbookC, err
	}

	mappedPort, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return finbookC, err
	}

	finbookC.URI = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return finbookC, nil
}

func postJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestE2E_LedgerFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	finbookC, err := setupFinbook(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, finbookC)

	// Sign up, then again with the same email.
	resp := postJSON(t, finbookC.URI+"/sign-up", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "hunter2",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, finbookC.URI+"/sign-up", "", map[string]string{
		"name": "Alice Again", "email": "alice@example.com", "password": "other",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Sign in and pull the token out of {"response": ...}.
	resp = postJSON(t, finbookC.URI+"/sign-in", "", map[string]string{
		"email": "alice@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var signIn struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signIn))
	resp.Body.Close()
	require.NotEmpty(t, signIn.Response)
	token := signIn.Response

	// Record events and check the running total.
	for _, event := range []map[string]interface{}{
		{"value": 100, "type": "INCOME"},
		{"value": 40, "type": "OUTCOME"},
		{"value": 10, "type": "INCOME"},
	} {
		resp = postJSON(t, finbookC.URI+"/financial-events", token, event)
		resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = getJSON(t, finbookC.URI+"/financial-events/sum", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum struct {
		Sum int64 `json:"sum"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	resp.Body.Close()
	assert.Equal(t, int64(70), sum.Sum)

	resp = getJSON(t, finbookC.URI+"/financial-events", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	resp.Body.Close()
	assert.Len(t, events, 3)
}

func TestE2E_RejectsBadTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	finbookC, err := setupFinbook(ctx, t)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, finbookC)

	resp := getJSON(t, finbookC.URI+"/financial-events", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = getJSON(t, finbookC.URI+"/financial-events", "tampered-token")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
