package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/niteen-codes/go-eventhub/config"
	"github.com/niteen-codes/go-eventhub/controllers"
	"github.com/niteen-codes/go-eventhub/realtime"
	"github.com/niteen-codes/go-eventhub/services"
	"github.com/niteen-codes/go-eventhub/store"
	"github.com/niteen-codes/go-eventhub/utils"
)

const testSecret = "test-secret"

// newServer spins up the full HTTP surface against an in-memory store and a
// live hub.
func newServer(t *testing.T, requireAuthForList bool) (*httptest.Server, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		JWTSecret:          testSecret,
		TokenTTL:           time.Hour,
		RequireAuthForList: requireAuthForList,
		OTPTTL:             10 * time.Minute,
	}

	mem := store.NewMemory()
	hub := realtime.NewHub()
	go hub.Run()

	svc := services.NewEventService(mem, hub)

	router := gin.New()
	controllers.RegisterRoutes(router, cfg,
		controllers.NewAuthController(mem, cfg),
		controllers.NewEventController(svc),
		hub)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mem
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// signup registers and logs a user in, returning the bearer token and the
// user id embedded in it.
func signup(t *testing.T, srv *httptest.Server, username, password string) (token, userID string) {
	t.Helper()

	code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)

	userID, err := utils.ParseToken(testSecret, out.Token)
	require.NoError(t, err)
	return out.Token, userID
}

func futureDate(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}
