package clidispatch

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/studiowebux/toolform/internal/catalog"
	"github.com/studiowebux/toolform/internal/schema"
)

func mustTool(t *testing.T) *schema.ToolDef {
	t.Helper()
	raw := `{
		"name": "reader_add_url",
		"description": "add a url",
		"inputSchema": {
			"type": "object",
			"properties": {
				"url": {"type": "string", "description": "the url"},
				"archive": {"type": "boolean"}
			},
			"required": ["url"]
		}
	}`
	var tool schema.ToolDef
	if err := json.Unmarshal([]byte(raw), &tool); err != nil {
		t.Fatalf("parse tool: %v", err)
	}
	return &tool
}

func TestBuildCommandRequiresRequiredFlag(t *testing.T) {
	client := catalog.NewClient("http://unused.invalid", "")
	cmd := buildCommand(mustTool(t), client, nil)
	cmd.SetArgs([]string{})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected missing-required-flag error")
	} else if !strings.Contains(err.Error(), "url") {
		t.Fatalf("expected error to mention url, got %v", err)
	}
}

func TestBuildCommandCallsToolWithParsedFlags(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"isError":false,"content":[{"type":"text","text":"ok"}]}}`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL, "")
	cmd := buildCommand(mustTool(t), client, nil)
	cmd.SetArgs([]string{"--url", "https://example.com", "--output", "text"})
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotBody, "https://example.com") {
		t.Fatalf("expected request body to carry the url arg, got %s", gotBody)
	}
}

func TestRegisterAddsOneSubcommandPerTool(t *testing.T) {
	root := &cobra.Command{Use: "toolform"}
	client := catalog.NewClient("http://unused.invalid", "")
	Register(root, []*schema.ToolDef{mustTool(t)}, client, nil)

	if len(root.Commands()) != 1 {
		t.Fatalf("expected 1 sub-command, got %d", len(root.Commands()))
	}
	if root.Commands()[0].Use != "reader_add_url" {
		t.Fatalf("unexpected sub-command name %q", root.Commands()[0].Use)
	}
}
