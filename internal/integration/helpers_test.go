package integration

import (
	"net/http/httptest"
	"testing"

	"todo_webapp/internal/config"
	httpserver "todo_webapp/internal/http"
	"todo_webapp/internal/service"
	"todo_webapp/internal/storage"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

// testConfig lifts the rate limits so contract runs never hit them.
func testConfig() *config.Config {
	return &config.Config{
		APIRateLimit:              100000,
		APIRateWindowSeconds:      60,
		MutationRateLimit:         100000,
		MutationRateWindowSeconds: 60,
	}
}

// startServer runs the real routes over an in-memory local store.
func startServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	facade := storage.New(storage.NewLocal(storage.NewMemoryBlobs()), storage.ModeLocal)
	hub := ws.NewHub()

	r := gin.New()
	httpserver.RegisterRoutes(r, httpserver.Deps{
		Todos:   service.NewTodoService(facade, hub),
		Hub:     hub,
		Config:  testConfig(),
		Version: "test",
	})

	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		ts.Close()
		_ = facade.Close()
	})
	return ts, hub
}
