package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aradsms/smscenter/internal/platform/config"
	"github.com/aradsms/smscenter/internal/smscenter/app"
	"github.com/aradsms/smscenter/internal/smscenter/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = oldOut })
	return &buf
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunCommand_ProcessesInputFile(t *testing.T) {
	out := captureOutput(t)
	cfgPath := writeFile(t, "config.yaml", "LOG_LEVEL: info\nLOG_FORMAT: json\n")
	inputPath := writeFile(t, "input.txt", `number1 +3611
number2 +3622
subscribe number1
message number1 number2 "held"
subscribe number2
`)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--input", inputPath})
	require.NoError(t, cmd.Execute())

	logs := out.String()
	assert.Contains(t, logs, `"msg":"SMS sent"`)
	assert.Contains(t, logs, `"to":"+3622"`)
	assert.Contains(t, logs, `"text":"held"`)
	assert.Contains(t, logs, `"msg":"Command processing finished"`)
	assert.Contains(t, logs, `"held_messages":0`)
}

func TestRunCommand_ReadsStdin(t *testing.T) {
	out := captureOutput(t)
	oldIn := stdin
	stdin = strings.NewReader("number1 +3611\nsubscribe number1\nmessage number1 broadcast \"hey\"\n")
	t.Cleanup(func() { stdin = oldIn })
	cfgPath := writeFile(t, "config.yaml", "LOG_FORMAT: text\n")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--input", "-", "--log-level", "debug"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "text=hey")
}

func TestRunCommand_MissingInputFile(t *testing.T) {
	captureOutput(t)
	cfgPath := writeFile(t, "config.yaml", "LOG_LEVEL: error\n")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--input", filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, cmd.Execute())
}

func TestRunCommand_InvalidLogLevelFlag(t *testing.T) {
	captureOutput(t)
	cfgPath := writeFile(t, "config.yaml", "LOG_LEVEL: info\n")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"run", "--config", cfgPath, "--log-level", "loud"})
	assert.Error(t, cmd.Execute())
}

func TestBuildTransport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tr, err := buildTransport(&config.Config{Transport: config.TransportLog}, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &transport.LogTransport{}, tr)

	_, err = buildTransport(&config.Config{Transport: config.TransportNATS}, nil, logger)
	assert.Error(t, err)

	_, err = buildTransport(&config.Config{Transport: "smoke-signals"}, nil, logger)
	assert.Error(t, err)
}

func TestMetricsRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	center := app.NewCenter(transport.NewLogTransport(logger), logger)
	ctx := context.Background()
	require.NoError(t, center.Register(ctx, "number1", "+3611"))
	require.NoError(t, center.Register(ctx, "number2", "+3622"))
	center.Subscribe(ctx, "number1")
	require.NoError(t, center.SendMessage(ctx, "number1", "number2", "later"))

	router := newMetricsRouter(center)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["registered"])
	assert.EqualValues(t, 1, body["reachable"])
	assert.EqualValues(t, 1, body["held_messages"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sms_center_messages_held_total")
}
