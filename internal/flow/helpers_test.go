package flow

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elito/maintdesk/internal/domain"
	"github.com/elito/maintdesk/internal/session"
	"github.com/elito/maintdesk/internal/store/sqlite"
	"github.com/elito/maintdesk/pkg/maintapi"
)

// routeRecorder captures navigation side effects from the session manager.
type routeRecorder struct {
	routes []domain.Route
}

func (r *routeRecorder) Navigate(route domain.Route) {
	r.routes = append(r.routes, route)
}

// flowEnv is a full client-side environment against a fake API server:
// real SQLite store, real manager, counting transport.
type flowEnv struct {
	client   *maintapi.Client
	mgr      *session.Manager
	store    *sqlite.Store
	recorder *routeRecorder
	requests *atomic.Int64
}

func newFlowEnv(t *testing.T, handler http.HandlerFunc) *flowEnv {
	t.Helper()

	requests := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	rec := &routeRecorder{}
	return &flowEnv{
		client:   maintapi.NewClient(srv.URL),
		mgr:      session.NewManager(st, rec, nil),
		store:    st,
		recorder: rec,
		requests: requests,
	}
}
