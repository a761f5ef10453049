package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Carbonetx/pkg"
	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/http/usecases"
	"github.com/lintang-b-s/Carbonetx/pkg/scenario"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const solvableRequest = `{
	"num_workers": 2,
	"scenario": {
		"name": "two plants",
		"target_capture_amount": 12,
		"sources": [
			{"label": "cement", "cell": 1, "production_rate": 8, "capture_cost": 3, "opening_cost": 10},
			{"label": "steel", "cell": 3, "production_rate": 6, "capture_cost": 4, "opening_cost": 10}
		],
		"sinks": [
			{"label": "aquifer", "cell": 2, "capacity": 20, "injection_cost": 1, "opening_cost": 5,
			 "well_capacity": 5, "well_opening_cost": 1}
		],
		"edges": [
			{"v1": 1, "v2": 2, "construction_cost": 1, "right_of_way_cost": 0.5},
			{"v1": 3, "v2": 2, "construction_cost": 2, "right_of_way_cost": 0.5}
		],
		"linear_components": [
			{"con_alpha": 2, "con_beta": 1, "row_alpha": 0.1, "row_beta": 0.2},
			{"con_alpha": 1, "con_beta": 6, "row_alpha": 0.05, "row_beta": 0.5}
		]
	}
}`

const infeasibleRequest = `{
	"scenario": {
		"target_capture_amount": 12,
		"sources": [{"label": "cement", "cell": 1, "production_rate": 8}],
		"sinks": [{"label": "aquifer", "cell": 2, "capacity": 20}],
		"edges": [{"v1": 1, "v2": 2, "construction_cost": 1}],
		"linear_components": [{"con_alpha": 1, "con_beta": 1}]
	}
}`

type solveEnvelope struct {
	Data *struct {
		ID       string             `json:"id"`
		Solution heuristic.Solution `json:"solution"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Iteration *heuristic.Iteration `json:"iteration"`
}

func newTestHandler(useRateLimit bool) http.Handler {
	log := zap.NewNop()
	defaults := scenario.Defaults{Crf: 0.1, ProjectLength: 1, TargetCaptureAmount: 0, SnapRadiusKm: 5}
	service := usecases.NewPlannerService(log, defaults, 1, usecases.NewSolutionStore(8))
	return NewAPI(log).Handler(useRateLimit, service)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, solveEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env solveEnvelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestSolveAndFetchSolution(t *testing.T) {
	h := newTestHandler(false)

	rr, env := doRequest(t, h, http.MethodPost, "/api/solve", solvableRequest)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotNil(t, env.Data)
	assert.Equal(t, "1", env.Data.ID)
	assert.Equal(t, "/api/solutions/1", rr.Header().Get("Location"))
	assert.Equal(t, pkg.STATUS_SOLVED, env.Data.Solution.Status)
	assert.InDelta(t, 12.0, env.Data.Solution.AmountCaptured, 1e-6)
	assert.NotEmpty(t, env.Data.Solution.Pipelines)

	rr, fetched := doRequest(t, h, http.MethodGet, "/api/solutions/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, fetched.Data)
	assert.Equal(t, env.Data.Solution, fetched.Data.Solution)
}

func TestSolveErrors(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "unknown solution", method: http.MethodGet, path: "/api/solutions/404", wantStatus: http.StatusNotFound},
		{name: "malformed json", method: http.MethodPost, path: "/api/solve", body: `{"scenario":`,
			wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/solve", body: `{"scenery": {}}`,
			wantStatus: http.StatusBadRequest},
		{name: "missing scenario", method: http.MethodPost, path: "/api/solve", body: `{"num_workers": 1}`,
			wantStatus: http.StatusBadRequest},
		{name: "no size table", method: http.MethodPost, path: "/api/solve",
			body:       `{"scenario": {"sources": [{"cell": 1, "production_rate": 1}]}}`,
			wantStatus: http.StatusBadRequest},
		{name: "negative workers", method: http.MethodPost, path: "/api/solve",
			body:       strings.Replace(solvableRequest, `"num_workers": 2`, `"num_workers": -2`, 1),
			wantStatus: http.StatusBadRequest},
	}

	h := newTestHandler(false)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := doRequest(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, http.StatusText(tt.wantStatus), env.Error.Code)
		})
	}
}

func TestSolveInfeasibleReturnsPartialSolution(t *testing.T) {
	h := newTestHandler(false)

	rr, env := doRequest(t, h, http.MethodPost, "/api/solve", infeasibleRequest)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())
	require.NotNil(t, env.Error)
	require.NotNil(t, env.Data)
	assert.Equal(t, pkg.STATUS_INFEASIBLE, env.Data.Solution.Status)
	assert.InDelta(t, 8.0, env.Data.Solution.AmountCaptured, 1e-6)

	rr, _ = doRequest(t, h, http.MethodGet, "/api/solutions/"+env.Data.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddlewares(t *testing.T) {
	h := newTestHandler(false)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ".", rr.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(solvableRequest))
	req.Header.Set("Content-Type", "text/plain")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestRateLimit(t *testing.T) {
	viper.Set("RATE_LIMIT_RPS", 0.001)
	viper.Set("RATE_LIMIT_BURST", 1)
	h := newTestHandler(true)

	rr, _ := doRequest(t, h, http.MethodGet, "/api/solutions/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doRequest(t, h, http.MethodGet, "/api/solutions/1", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr, _ = doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 172.16.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.9", got)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}

func TestSolveStream(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(false))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, br, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/solve/stream")
	require.NoError(t, err)
	defer conn.Close()

	var rw io.ReadWriter = conn
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{io.MultiReader(br, conn), conn}
	}

	require.NoError(t, wsutil.WriteClientText(rw, []byte(solvableRequest)))

	iterations := make([]heuristic.Iteration, 0)
	var final solveEnvelope
	for final.Data == nil && final.Error == nil {
		msg, err := wsutil.ReadServerText(rw)
		require.NoError(t, err)

		var env solveEnvelope
		require.NoError(t, json.NewDecoder(bytes.NewReader(msg)).Decode(&env))
		if env.Iteration != nil {
			iterations = append(iterations, *env.Iteration)
			continue
		}
		final = env
	}

	require.Nil(t, final.Error)
	require.NotNil(t, final.Data)
	assert.Equal(t, pkg.STATUS_SOLVED, final.Data.Solution.Status)
	assert.Len(t, iterations, final.Data.Solution.Iterations)
	for i, it := range iterations {
		assert.Equal(t, i+1, it.Number)
	}
}

func TestSolveStreamRejectsInvalidRequest(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(false))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, br, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/solve/stream")
	require.NoError(t, err)
	defer conn.Close()
	if br != nil {
		ws.PutReader(br)
	}

	require.NoError(t, wsutil.WriteClientText(conn, []byte(`{"num_workers": 1}`)))

	msg, err := wsutil.ReadServerText(conn)
	require.NoError(t, err)

	var env solveEnvelope
	require.NoError(t, json.Unmarshal(msg, &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusText(http.StatusBadRequest), env.Error.Code)
}
