package ipc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kylelegare/cu-MCP/internal/config"
)

type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func decodeResponses(t *testing.T, out *bytes.Buffer) map[string]wireResponse {
	t.Helper()
	responses := make(map[string]wireResponse)
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp wireResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("output line does not parse: %v\n%s", err, line)
		}
		responses[string(resp.ID)] = resp
	}
	return responses
}

func TestServerRun(t *testing.T) {
	h := newTestHandler(t)
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"execute_sql","arguments":{"sql":"SELECT COUNT(*) AS total FROM nums"}}}`,
		`this is not json`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
	}, "\n") + "\n")
	out := &bytes.Buffer{}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(config.ServerConfig{MaxConcurrent: 2}, h, log, in, out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	responses := decodeResponses(t, out)
	if len(responses) != 4 {
		t.Fatalf("got %d responses, want 4: %+v", len(responses), responses)
	}

	if resp := responses["1"]; resp.Error != nil || !strings.Contains(string(resp.Result), protocolVersion) {
		t.Fatalf("initialize response = %+v", resp)
	}
	if resp := responses["2"]; resp.Error != nil || !strings.Contains(string(resp.Result), "total") {
		t.Fatalf("execute response = %+v", resp)
	}
	if resp := responses["null"]; resp.Error == nil || resp.Error.Code != codeParseError {
		t.Fatalf("parse error response = %+v", resp)
	}
	if resp := responses["3"]; resp.Error != nil || !strings.Contains(string(resp.Result), "execute_sql") {
		t.Fatalf("tools/list response = %+v", resp)
	}
}

func TestServerRunUnbounded(t *testing.T) {
	h := newTestHandler(t)
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	out := &bytes.Buffer{}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(config.ServerConfig{MaxConcurrent: 0}, h, log, in, out)
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if resp, ok := decodeResponses(t, out)["1"]; !ok || resp.Error != nil {
		t.Fatalf("ping response = %+v", resp)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	h := newTestHandler(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &bytes.Buffer{}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(config.ServerConfig{MaxConcurrent: 2}, h, log, pr, out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
