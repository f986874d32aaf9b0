package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kylelegare/cu-MCP/internal/catalog"
	"github.com/kylelegare/cu-MCP/internal/errors"
	"github.com/kylelegare/cu-MCP/internal/examples"
	"github.com/kylelegare/cu-MCP/internal/metrics"
	"github.com/kylelegare/cu-MCP/internal/query"
)

type ctxKey int

const requestIDKey ctxKey = 0

// WithRequestID tags the context with the server-assigned request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the tag set by WithRequestID, or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Handler dispatches decoded frames to the gateway components. One
// handler serves all requests; it holds no per-request state.
type Handler struct {
	engine *query.Engine
	reader *catalog.Reader
	log    *slog.Logger
}

func NewHandler(engine *query.Engine, reader *catalog.Reader, log *slog.Logger) *Handler {
	return &Handler{engine: engine, reader: reader, log: log}
}

// Handle processes one frame and returns the response, or nil when the
// frame is a notification.
func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	if req.JSONRPC != jsonrpcVersion || req.Method == "" {
		if req.Notification() {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "invalid request")
	}

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, newInitializeResult())
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	case "tools/list":
		return resultResponse(req.ID, map[string]any{"tools": toolDescriptors()})
	case "tools/call":
		return h.handleToolCall(ctx, req)
	default:
		if req.Notification() {
			// notifications/initialized and friends need no reply.
			return nil
		}
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (h *Handler) handleToolCall(ctx context.Context, req *Request) *Response {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "malformed tools/call params")
	}

	start := time.Now()
	result, rpcErr := h.callTool(ctx, params)
	elapsed := time.Since(start)

	status := "ok"
	if rpcErr != nil || (result != nil && result.IsError) {
		status = "error"
	}
	metrics.OperationsTotal.WithLabelValues(params.Name, status).Inc()
	metrics.OperationDuration.WithLabelValues(params.Name).Observe(elapsed.Seconds())
	h.log.Info("tool call",
		"request_id", RequestID(ctx),
		"tool", params.Name,
		"status", status,
		"duration", elapsed,
	)

	if rpcErr != nil {
		return &Response{JSONRPC: jsonrpcVersion, ID: req.ID, Error: rpcErr}
	}
	return resultResponse(req.ID, result)
}

// callTool runs one gateway operation. Gateway failures come back as
// tool results flagged IsError; only unusable params produce an RPC
// error.
func (h *Handler) callTool(ctx context.Context, params callParams) (*toolResult, *RPCError) {
	switch params.Name {
	case "execute_sql":
		var args struct {
			SQL string `json:"sql"`
		}
		if err := unmarshalArgs(params.Arguments, &args); err != nil {
			return nil, &RPCError{Code: codeInvalidParams, Message: err.Error()}
		}
		res, err := h.engine.Execute(ctx, args.SQL)
		if err != nil {
			return h.reportResult(err)
		}
		return h.payloadResult(res)

	case "get_schema":
		var args struct {
			TableName string `json:"table_name"`
		}
		if err := unmarshalArgs(params.Arguments, &args); err != nil {
			return nil, &RPCError{Code: codeInvalidParams, Message: err.Error()}
		}
		if args.TableName == "" {
			list, err := h.reader.List(ctx)
			if err != nil {
				return h.reportResult(err)
			}
			return h.payloadResult(list)
		}
		ts, err := h.reader.Describe(ctx, args.TableName)
		if err != nil {
			return h.reportResult(err)
		}
		return h.payloadResult(ts)

	case "get_example_queries":
		var args struct {
			Category string `json:"category"`
		}
		if err := unmarshalArgs(params.Arguments, &args); err != nil {
			return nil, &RPCError{Code: codeInvalidParams, Message: err.Error()}
		}
		set, err := examples.Filter(args.Category)
		if err != nil {
			return h.reportResult(err)
		}
		return h.payloadResult(set)

	default:
		return nil, &RPCError{Code: codeInvalidParams, Message: fmt.Sprintf("unknown tool: %s", params.Name)}
	}
}

func (h *Handler) payloadResult(payload any) (*toolResult, *RPCError) {
	result, err := newToolResult(payload, false)
	if err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "unencodable result"}
	}
	return result, nil
}

func (h *Handler) reportResult(err error) (*toolResult, *RPCError) {
	rep := errors.Translate(err)
	metrics.ErrorsTotal.WithLabelValues(string(rep.Kind)).Inc()
	result, mErr := newToolResult(rep, true)
	if mErr != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "unencodable error report"}
	}
	return result, nil
}

func unmarshalArgs(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("malformed tool arguments: %w", err)
	}
	return nil
}

func resultResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, msg string) *Response {
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Error: &RPCError{Code: code, Message: msg}}
}
