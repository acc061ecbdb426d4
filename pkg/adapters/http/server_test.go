package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/pkg/adapters/file"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *turtle.Engine) {
	t.Helper()
	eng, err := turtle.New()
	require.NoError(t, err)
	return NewHandler(eng, opts...), eng
}

func TestPostCommands_PlainText(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := "PLACE 1,2,EAST\nMOVE\nMOVE\nLEFT\nMOVE\nREPORT\n"
	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CommandsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Transitions, 6)
	assert.Equal(t, []string{"3,3,NORTH"}, resp.Reports)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, PositionResponse{X: 3, Y: 3, Facing: domain.North, Placed: true}, resp.Position)
}

func TestPostCommands_JSONWithParseError(t *testing.T) {
	handler, eng := newTestHandler(t)

	body := `{"commands":["PLACE 0,0,NORTH","PLACE 1,b,EAST","REPORT"]}`
	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CommandsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"0,0,NORTH"}, resp.Reports)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "PLACE 1,b,EAST")
	assert.Equal(t, domain.NewPosition(0, 0, domain.North), eng.Position())
}

func TestPostCommands_BadJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostCommands_BatchWithoutLoader(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader("route.txt"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetReport(t *testing.T) {
	handler, eng := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := eng.Execute(context.Background(), "PLACE 4,0,WEST")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4,0,WEST\n", w.Body.String())
}

func TestGetPositionAndHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/position", nil))
	assert.JSONEq(t, `{"x":-1,"y":-1,"facing":"UNDEFINED","placed":false}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsMount(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("turtle_commands_total 0\n"))
	})
	handler, _ := newTestHandler(t, WithMetrics(metrics))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "turtle_commands_total")
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(nil)
	eng, err := turtle.New(turtle.WithLifecycleHooks(streams.Hooks()))
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(eng, WithStreams(streams)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	// The ping is written after Subscribe, so events published from here on are delivered.
	assert.Equal(t, "connected", readData())

	_, err = eng.Execute(context.Background(), "PLACE 2,2,NORTH")
	require.NoError(t, err)

	var event domain.TransitionEvent
	require.NoError(t, json.Unmarshal([]byte(readData()), &event))
	assert.Equal(t, domain.OutcomeApplied, event.Transition.Outcome)
	assert.Equal(t, domain.NewPosition(2, 2, domain.North), event.Transition.To)
}

func TestPostCommands_BatchConfinedToRoot(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "creds.txt")
	require.NoError(t, os.WriteFile(secret, []byte("db_password=hunter2\napi_key=abc123\n"), 0644))

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("token=s3cr3t\nPLACE 0,0,NORTH\nREPORT\n"), 0644))

	eng, err := turtle.New(turtle.WithBatchLoader(file.NewConfinedLoader(root)))
	require.NoError(t, err)
	handler := NewHandler(eng)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	for _, ref := range []string{secret, "../" + filepath.Base(outside) + "/creds.txt"} {
		t.Run(ref, func(t *testing.T) {
			w := post(ref)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.NotContains(t, w.Body.String(), "hunter2")
			assert.NotContains(t, w.Body.String(), "abc123")
		})
	}

	t.Run("Local batch does not echo lines", func(t *testing.T) {
		w := post("notes.txt")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "s3cr3t")

		var resp CommandsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"0,0,NORTH"}, resp.Reports)
	})
}
