package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turtle/internal/config"
	"github.com/aretw0/turtle/internal/logging"
	"github.com/aretw0/turtle/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExec(t *testing.T) {
	t.Run("Reports go to stdout", func(t *testing.T) {
		var out, errOut bytes.Buffer
		err := Exec(context.Background(), ExecOptions{
			Lines:  []string{"PLACE 0,0,NORTH", "MOVE", "REPORT"},
			Stdout: &out,
			Stderr: &errOut,
		})
		require.NoError(t, err)
		assert.Equal(t, "0,1,NORTH\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("Parse errors are printed and skipped", func(t *testing.T) {
		var out, errOut bytes.Buffer
		err := Exec(context.Background(), ExecOptions{
			Lines:  []string{"PLACE X", "PLACE 1,1,EAST", "REPORT"},
			Stdout: &out,
			Stderr: &errOut,
		})
		require.NoError(t, err)
		assert.Equal(t, "1,1,EAST\n", out.String())
		assert.Contains(t, errOut.String(), "Error:")
	})

	t.Run("Strict stops at the first error", func(t *testing.T) {
		var out bytes.Buffer
		err := Exec(context.Background(), ExecOptions{
			Lines:  []string{"PLACE X", "PLACE 1,1,EAST", "REPORT"},
			Strict: true,
			Stdout: &out,
			Stderr: io.Discard,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict mode")
		assert.Empty(t, out.String())
	})

	t.Run("Missing batch file fails", func(t *testing.T) {
		err := Exec(context.Background(), ExecOptions{
			Lines:  []string{"does-not-exist.txt"},
			Stdout: io.Discard,
			Stderr: io.Discard,
		})
		assert.ErrorIs(t, err, ports.ErrBatchNotFound)
	})

	t.Run("Batch file", func(t *testing.T) {
		path := writeFile(t, "route.txt", "PLACE 1,2,EAST\nMOVE\nMOVE\nLEFT\nMOVE\nREPORT\n")
		var out bytes.Buffer
		err := Exec(context.Background(), ExecOptions{
			Lines:  []string{path},
			Stdout: &out,
			Stderr: io.Discard,
		})
		require.NoError(t, err)
		assert.Equal(t, "3,3,NORTH\n", out.String())
	})
}

func TestExec_ConfigGrid(t *testing.T) {
	cfgPath := writeFile(t, "turtle.yaml", "grid:\n  max:\n    x: 9\n    y: 9\n")
	var out bytes.Buffer
	err := Exec(context.Background(), ExecOptions{
		Options: Options{ConfigPath: cfgPath},
		Lines:   []string{"PLACE 8,8,NORTH", "MOVE", "REPORT"},
		Stdout:  &out,
		Stderr:  io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, "8,9,NORTH\n", out.String())
}

func TestExec_RedisSink(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("TURTLE_REDIS_ADDR", mr.Addr())

	var out bytes.Buffer
	err := Exec(context.Background(), ExecOptions{
		Lines:  []string{"PLACE 0,0,NORTH", "REPORT", "RIGHT", "REPORT"},
		Stdout: &out,
		Stderr: io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, "0,0,NORTH\n0,0,EAST\n", out.String())

	got, err := mr.List("turtle:reports")
	require.NoError(t, err)
	assert.Equal(t, []string{"0,0,NORTH", "0,0,EAST"}, got)
}

func TestExec_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	t.Setenv("TURTLE_REDIS_ADDR", addr)

	err := Exec(context.Background(), ExecOptions{
		Lines:  []string{"REPORT"},
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis sink unavailable")
}

func TestRun_Stdin(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), RunOptions{
		Stdin:  strings.NewReader("PLACE 1,2,EAST\nMOVE\n\nREPORT\nexit\nREPORT\n"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "2,2,EAST\n", out.String())
}

func TestRun_Files(t *testing.T) {
	first := writeFile(t, "a.cmds", "PLACE 0,0,NORTH\nMOVE\n")
	second := writeFile(t, "b.cmds", "RIGHT\nREPORT\n")

	var out bytes.Buffer
	err := Run(context.Background(), RunOptions{
		Files:  []string{first, second},
		Stdin:  strings.NewReader(""),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "0,1,EAST\n", out.String())
}

func TestRun_MissingFile(t *testing.T) {
	err := Run(context.Background(), RunOptions{
		Files:  []string{filepath.Join(t.TempDir(), "nope.cmds")},
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
	})
	assert.ErrorIs(t, err, ports.ErrBatchNotFound)
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), RunOptions{
		JSON:   true,
		Stdin:  strings.NewReader("\"PLACE 3,3,WEST\"\nREPORT\n"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":3,"y":3,"facing":"WEST","report":"3,3,WEST"}`, out.String())
}

func TestRun_Grid(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), RunOptions{
		Grid:   true,
		Stdin:  strings.NewReader("PLACE 2,2,SOUTH\nREPORT\n"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "2,2,SOUTH\n"))
	assert.Contains(t, out.String(), "▼")
}

func TestRun_StrictFromConfig(t *testing.T) {
	t.Setenv("TURTLE_STRICT", "true")
	err := Run(context.Background(), RunOptions{
		Stdin:  strings.NewReader("PLACE 1\nREPORT\n"),
		Stdout: io.Discard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestRun_FollowNeedsOneFile(t *testing.T) {
	err := Run(context.Background(), RunOptions{Follow: true})
	assert.ErrorIs(t, err, ErrFollowNeedsOneFile)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("TURTLE_GRID_MAX_X", "-3")
	err := Run(context.Background(), RunOptions{
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
	})
	require.Error(t, err)
}

func TestNewHTTPHandler(t *testing.T) {
	cfg := config.Default()
	handler, cleanup, err := newHTTPHandler(context.Background(), &cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/commands", "text/plain", strings.NewReader("PLACE 0,0,NORTH\nMOVE\nREPORT\n"))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "0,1,NORTH")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "turtle_reports_total 1")
	assert.Contains(t, string(body), "turtle_placed 1")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(io.EOF))
	assert.Error(t, handleExecutionError(ports.ErrBatchNotFound))
}

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := NewSignalContext(parent)
	cancel()
	<-sc.Done()
	if sc.Signal() != nil {
		t.Errorf("expected no signal, got %v", sc.Signal())
	}
}

func TestNewHTTPHandler_RefusesPathsOutsideWorkingDir(t *testing.T) {
	secret := writeFile(t, "creds.txt", "db_password=hunter2\n")

	cfg := config.Default()
	handler, cleanup, err := newHTTPHandler(context.Background(), &cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(secret))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
}
