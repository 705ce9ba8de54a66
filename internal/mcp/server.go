// Package mcp serves tools to Model Context Protocol clients over a
// line-delimited JSON-RPC 2.0 stream such as stdin/stdout.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Tool is one callable tool. Call returns the text shown to the client; an
// error is reported as a tool result with isError set, not as an RPC error.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Call        func(ctx context.Context, args map[string]any) (string, error)
}

// Server dispatches MCP requests to its tools.
type Server struct {
	name    string
	version string
	tools   []Tool
	logger  *log.Logger
}

// NewServer creates a server announcing itself as name/version.
func NewServer(name, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{name: name, version: version, logger: logger}
}

// AddTool registers t. Tools are listed in registration order.
func (s *Server) AddTool(t Tool) {
	s.tools = append(s.tools, t)
}

func (s *Server) tool(name string) (Tool, bool) {
	for _, t := range s.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// Serve reads one request per line from in and writes one response per line
// to out until in is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := s.handleLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *Server) handleLine(ctx context.Context, line []byte) *Response {
	req, err := UnmarshalRequest(line)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = &RPCError{Code: InternalError, Message: err.Error()}
		}
		s.logger.Warn("bad request", "code", rpcErr.Code, "err", rpcErr.Message)
		var id any
		if req != nil {
			id = req.ID
		}
		return NewErrorResponse(id, rpcErr.Code, rpcErr.Message, rpcErr.Data)
	}
	if req.IsNotification() {
		s.logger.Debug("notification", "method", req.Method)
		return nil
	}
	return s.Handle(ctx, req)
}

// Handle answers a single request.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return NewResponse(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo":      map[string]any{"name": s.name, "version": s.version},
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
		})
	case "ping":
		return NewResponse(req.ID, map[string]any{})
	case "tools/list":
		tools := make([]map[string]any, 0, len(s.tools))
		for _, t := range s.tools {
			schema := t.InputSchema
			if schema == nil {
				schema = map[string]any{"type": "object"}
			}
			tools = append(tools, map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"inputSchema": schema,
			})
		}
		return NewResponse(req.ID, map[string]any{"tools": tools})
	case "tools/call":
		name, _ := req.Params["name"].(string)
		t, ok := s.tool(name)
		if !ok {
			return NewErrorResponse(req.ID, InvalidParams, fmt.Sprintf("unknown tool: %q", name), nil)
		}
		args, _ := req.Params["arguments"].(map[string]any)
		text, err := t.Call(ctx, args)
		isError := err != nil
		if isError {
			s.logger.Warn("tool failed", "tool", name, "err", err)
			text = err.Error()
		}
		return NewResponse(req.ID, map[string]any{
			"content": []map[string]any{{"type": "text", "text": text}},
			"isError": isError,
		})
	default:
		return NewErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("unknown method: %s", req.Method), nil)
	}
}

// StringArg returns the string argument key, or "" when it is absent or not
// a string.
func StringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}
