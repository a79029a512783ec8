package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListCatalogParsesTools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Method != "tools/list" {
			t.Errorf("unexpected method %q", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"tools":[{"name":"reader_add_url","description":"add"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	tools, err := client.ListCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "reader_add_url" {
		t.Fatalf("got %+v", tools)
	}
}

func TestListCatalogSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	if _, err := client.ListCatalog(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("got auth header %q", gotAuth)
	}
}

func TestCallToolReturnsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"isError":false,"content":[{"type":"text","text":"ok"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result, err := client.CallTool("reader_add_url", map[string]any{"url": "https://x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError || len(result.Content) != 1 || result.Content[0].Text != "ok" {
		t.Fatalf("got %+v", result)
	}
}

func TestCallToolSurfacesRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"boom"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CallTool("x", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCallToolSurfacesTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	_, err := client.CallTool("x", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
}

func TestCallToolSurfacesHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.CallTool("x", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
