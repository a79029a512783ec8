// Package catalog implements the JSON-RPC-over-HTTP transport the core uses
// to list the remote tool catalog and invoke individual tools, along with a
// 24-hour on-disk cache of the catalog itself.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studiowebux/toolform/internal/schema"
)

// Client talks to a single JSON-RPC-over-HTTP endpoint using a pooled
// *http.Client shared across ListCatalog and CallTool calls.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient builds a Client against endpoint, authenticating every call with
// bearer token. A single *http.Client is constructed and reused for both
// catalog listing and tool invocation.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used by subsequent calls, letting
// callers reload credentials immediately before each tool invocation.
func (c *Client) SetToken(token string) {
	c.token = token
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func (c *Client) call(method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc call failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("parse rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

// ListCatalog fetches the full tool catalog from the remote service.
func (c *Client) ListCatalog() ([]*schema.ToolDef, error) {
	result, err := c.call("tools/list", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tools []*schema.ToolDef `json:"tools"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return payload.Tools, nil
}

// Content is one element of a Result's content array.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Result is the outcome of a tool invocation.
type Result struct {
	IsError           bool            `json:"isError"`
	Content           []Content       `json:"content"`
	StructuredContent json.RawMessage `json:"structuredContent,omitempty"`
}

// CallTool invokes the named tool with the given arguments.
func (c *Client) CallTool(name string, args map[string]any) (*Result, error) {
	params := map[string]any{"name": name, "arguments": args}
	raw, err := c.call("tools/call", params)
	if err != nil {
		return nil, err
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse tool result: %w", err)
	}
	return &result, nil
}
