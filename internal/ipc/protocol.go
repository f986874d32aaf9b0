package ipc

import (
	"encoding/json"

	"github.com/kylelegare/cu-MCP/internal/version"
)

// The wire format is newline-delimited JSON-RPC 2.0 on stdio, with the
// method set and tool surface of the Model Context Protocol.
const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"
	serverName      = "cu-mcp"
)

// MaxFrameSize bounds a single inbound line.
const MaxFrameSize = 4 << 20

// JSON-RPC error codes for malformed frames. Gateway failures never use
// these; they travel inside tool results.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Request is one inbound frame. A missing ID marks a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Notification reports whether the frame expects no response.
func (r *Request) Notification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response is one outbound frame.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func newInitializeResult() initializeResult {
	return initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]any{"tools": map[string]any{}},
		ServerInfo:      serverInfo{Name: serverName, Version: version.Version},
	}
}

// toolDescriptor advertises one tool through tools/list.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func toolDescriptors() []toolDescriptor {
	return []toolDescriptor{
		{
			Name:        "execute_sql",
			Description: "Execute a validated SELECT query with strong safety guardrails",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sql": map[string]any{
						"type":        "string",
						"description": "A single read-only SELECT or WITH statement",
					},
				},
				"required": []string{"sql"},
			},
		},
		{
			Name:        "get_schema",
			Description: "Return database metadata and optional table detail",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"table_name": map[string]any{
						"type":        "string",
						"description": "Table or view to describe; omit to list every object",
					},
				},
			},
		},
		{
			Name:        "get_example_queries",
			Description: "Return SQL query templates organized by category",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type":        "string",
						"description": "Optional filter: comparison, financial_analysis, ranking, search, trends",
					},
				},
			},
		},
	}
}

// callParams is the tools/call parameter envelope.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// textContent is the single content shape this server emits.
type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolResult wraps a tool payload. Gateway failures ride here with
// IsError set, never as JSON-RPC errors.
type toolResult struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

func newToolResult(payload any, isError bool) (*toolResult, error) {
	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return &toolResult{
		Content: []textContent{{Type: "text", Text: string(text)}},
		IsError: isError,
	}, nil
}
