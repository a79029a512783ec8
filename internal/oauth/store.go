package oauth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StoredToken adds the expiry bookkeeping the bare wire Token lacks.
type StoredToken struct {
	Token
	ObtainedAt time.Time `json:"obtained_at"`
}

// LoadToken reads a previously saved token from path. Returns ok=false if no
// token file exists yet.
func LoadToken(path string) (*StoredToken, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read token file: %w", err)
	}
	var st StoredToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false, fmt.Errorf("parse token file: %w", err)
	}
	return &st, true, nil
}

// SaveToken persists tok to path, creating parent directories as needed.
func SaveToken(path string, tok *Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	st := StoredToken{Token: *tok, ObtainedAt: time.Now()}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Expired reports whether the token's lifetime (from when it was obtained)
// has elapsed, using a small safety margin.
func (st StoredToken) Expired() bool {
	if st.ExpiresIn <= 0 {
		return false
	}
	return time.Since(st.ObtainedAt) > time.Duration(st.ExpiresIn)*time.Second-30*time.Second
}
