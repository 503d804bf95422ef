package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/handler"
	"github.com/sumire/projectmanager/internal/repository"
	"github.com/sumire/projectmanager/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestAPI starts the real project API seeded with the three default
// projects and returns a client for it.
func newTestAPI(t *testing.T) *Client {
	t.Helper()

	svc := service.NewProjectService(repository.NewMemoryProjectRepository(), zap.NewNop())
	require.NoError(t, svc.Seed(context.Background(), []string{"Project A", "Project B", "Project C"}))

	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{Projects: svc}))
	c := New(srv.URL)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})
	return c
}
