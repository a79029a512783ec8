package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/studiowebux/toolform/internal/schema"
)

// cacheTTL is how long a persisted catalog remains valid.
const cacheTTL = 24 * time.Hour

type cacheDocument struct {
	Tools     []*schema.ToolDef `json:"tools"`
	FetchedAt int64             `json:"fetched_at"`
}

// LoadCache reads a catalog cache document from path. ok is false if the
// file is missing or has expired.
func LoadCache(path string) (tools []*schema.ToolDef, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read catalog cache: %w", err)
	}
	var doc cacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parse catalog cache: %w", err)
	}
	fetched := time.UnixMilli(doc.FetchedAt)
	if time.Since(fetched) > cacheTTL {
		return nil, false, nil
	}
	return doc.Tools, true, nil
}

// SaveCache persists tools to path with the current time as fetched_at.
func SaveCache(path string, tools []*schema.ToolDef) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	doc := cacheDocument{Tools: tools, FetchedAt: time.Now().UnixMilli()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog cache: %w", err)
	}
	return nil
}

// FetchCatalog returns the catalog from cache if present and fresh,
// otherwise fetches it from client and refreshes the cache.
func FetchCatalog(client *Client, cachePath string) ([]*schema.ToolDef, error) {
	if tools, ok, err := LoadCache(cachePath); err == nil && ok {
		return tools, nil
	}
	tools, err := client.ListCatalog()
	if err != nil {
		return nil, err
	}
	if err := SaveCache(cachePath, tools); err != nil {
		return nil, err
	}
	return tools, nil
}
