package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoServer() *Server {
	s := NewServer("test", "1.0", log.New(io.Discard))
	s.AddTool(Tool{
		Name:        "echo",
		Description: "Echo the text argument",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
		},
		Call: func(_ context.Context, args map[string]any) (string, error) {
			text := StringArg(args, "text")
			if text == "" {
				return "", errors.New("text is required")
			}
			return text, nil
		},
	})
	return s
}

// exchange feeds lines to the server and decodes every response it writes.
func exchange(t *testing.T, s *Server, lines ...string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	var resps []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		resps = append(resps, m)
	}
	return resps
}

func TestServeSession(t *testing.T) {
	resps := exchange(t, newEchoServer(),
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{}}}`,
	)
	require.Len(t, resps, 4, "notification must not be answered")

	hello := resps[0]["result"].(map[string]any)
	assert.Equal(t, ProtocolVersion, hello["protocolVersion"])
	assert.Equal(t, "test", hello["serverInfo"].(map[string]any)["name"])

	tools := resps[1]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "echo", tools[0].(map[string]any)["name"])

	ok := resps[2]["result"].(map[string]any)
	assert.Equal(t, false, ok["isError"])
	assert.Equal(t, "hi", ok["content"].([]any)[0].(map[string]any)["text"])

	failed := resps[3]["result"].(map[string]any)
	assert.Equal(t, true, failed["isError"])
	assert.Equal(t, "text is required", failed["content"].([]any)[0].(map[string]any)["text"])
	assert.Equal(t, float64(4), resps[3]["id"])
}

func TestServeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code float64
	}{
		{"malformed json", `{"jsonrpc":`, ParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`, InvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`, MethodNotFound},
		{"unknown tool", `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope"}}`, InvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resps := exchange(t, newEchoServer(), tt.line)
			require.Len(t, resps, 1)
			rpcErr, ok := resps[0]["error"].(map[string]any)
			require.True(t, ok, "expected an error response: %v", resps[0])
			assert.Equal(t, tt.code, rpcErr["code"])
		})
	}
}

func TestServePing(t *testing.T) {
	resps := exchange(t, newEchoServer(), `{"jsonrpc":"2.0","id":"a","method":"ping"}`)
	require.Len(t, resps, 1)
	assert.Equal(t, "a", resps[0]["id"])
	assert.Equal(t, map[string]any{}, resps[0]["result"])
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := newEchoServer().Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
