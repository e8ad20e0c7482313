// Package server implements the line-delimited JSON-RPC loop that connects
// the tool registry to an MCP client on stdin/stdout. The loop is thin:
// requests are parsed, tool calls run concurrently on the worker pool, and
// responses are written one per line.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/tools"
	"github.com/user/perplexity-mcp/internal/worker_pool"
)

const protocolVersion = "2024-11-05"

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// maxLineBytes bounds a single request line (code snippets can be large)
const maxLineBytes = 4 * 1024 * 1024

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// textContent is one entry of a tool call result
type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callToolResult struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Server dispatches JSON-RPC requests from a reader to the registry and
// writes responses to a writer. Writes are serialized; tool executions are
// not.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	pool     *worker_pool.Pool
	logger   *logging.Logger

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // guards out
}

// New creates a server reading requests from in and writing responses to out
func New(name, version string, registry *tools.Registry, pool *worker_pool.Pool, logger *logging.Logger, in io.Reader, out io.Writer) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		pool:     pool,
		logger:   logger.Named("server"),
		in:       in,
		out:      out,
	}
}

// Run processes requests until EOF or context cancellation. Malformed
// lines are logged and skipped; in-flight tool calls are drained before
// returning.
func (s *Server) Run(ctx context.Context) error {
	defer s.pool.Wait()

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req rpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("error parsing request", logging.Error(err))
			s.write(rpcResponse{
				JSONRPC: "2.0",
				Error:   &rpcError{Code: codeParseError, Message: "parse error"},
			})
			continue
		}

		if err := s.handle(ctx, req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Server) handle(ctx context.Context, req rpcRequest) error {
	switch req.Method {
	case "initialize":
		s.reply(req, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		})

	case "notifications/initialized", "initialized":
		// Notification, no response

	case "ping":
		s.reply(req, map[string]interface{}{})

	case "tools/list":
		s.reply(req, map[string]interface{}{"tools": s.registry.List()})

	case "tools/call":
		var params callToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.replyError(req, codeInvalidParams, fmt.Sprintf("invalid params: %v", err))
			return nil
		}
		// Run on the pool so independent tool calls execute concurrently
		return s.pool.Submit(ctx, func(ctx context.Context) {
			s.executeTool(ctx, req, params)
		})

	default:
		if req.ID == nil {
			// Unknown notification, ignore
			return nil
		}
		s.replyError(req, codeMethodNotFound, "method not found: "+req.Method)
	}

	return nil
}

// executeTool dispatches the call and renders its outcome. A failed tool
// call becomes an error-flagged result, distinguishable from success, so
// the client decides how to surface it.
func (s *Server) executeTool(ctx context.Context, req rpcRequest, params callToolParams) {
	s.logger.Debug("executing tool", logging.String("tool", params.Name))

	text, err := s.registry.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool call failed",
			logging.String("tool", params.Name),
			logging.Error(err),
		)
		s.reply(req, callToolResult{
			Content: []textContent{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
		return
	}

	s.reply(req, callToolResult{
		Content: []textContent{{Type: "text", Text: text}},
	})
}

func (s *Server) reply(req rpcRequest, result interface{}) {
	if req.ID == nil {
		return
	}
	s.write(rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func (s *Server) replyError(req rpcRequest, code int, message string) {
	if req.ID == nil {
		return
	}
	s.write(rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: code, Message: message}})
}

func (s *Server) write(resp rpcResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", logging.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.logger.Error("failed to write response", logging.Error(err))
	}
}
