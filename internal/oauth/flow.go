// Package oauth implements the browser-driven OAuth 2.0 PKCE flow used to
// obtain a bearer token for the catalog's JSON-RPC endpoint.
package oauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const (
	// CallbackTimeout is the maximum time to wait for the browser redirect.
	CallbackTimeout = 5 * time.Minute
	// TokenRequestTimeout bounds the token-exchange HTTP call.
	TokenRequestTimeout = 30 * time.Second
)

// PKCEPair holds the verifier and challenge for an OAuth flow, per RFC 7636.
type PKCEPair struct {
	Verifier  string
	Challenge string
}

// GeneratePKCEPair generates a random code verifier and its S256 challenge.
func GeneratePKCEPair() (*PKCEPair, error) {
	verifier, err := generateCodeVerifier()
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256([]byte(verifier))
	return &PKCEPair{
		Verifier:  verifier,
		Challenge: base64.RawURLEncoding.EncodeToString(hash[:]),
	}, nil
}

// generateCodeVerifier returns a high-entropy, base64url-encoded random
// string suitable as a PKCE verifier or an OAuth state value.
func generateCodeVerifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Config describes the catalog server's OAuth endpoints and client identity.
type Config struct {
	AuthURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	CallbackPort int
}

// Token is the persisted access/refresh token pair.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// StartFlow runs the full PKCE authorization-code flow: open the browser,
// wait for the localhost redirect, exchange the code for a token.
func StartFlow(config *Config) (*Token, error) {
	pkce, err := GeneratePKCEPair()
	if err != nil {
		return nil, fmt.Errorf("generate pkce: %w", err)
	}
	state, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	server := newCallbackServer(config.CallbackPort)
	if err := server.start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer server.shutdown(context.Background())

	authURL := buildAuthURL(config, pkce.Challenge, state)
	if err := openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("open browser: %w\nvisit manually: %s", err, authURL)
	}

	result, err := server.waitForCallback(CallbackTimeout)
	if err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, fmt.Errorf("authorization failed: %s", result.Error)
	}
	if result.Code == "" {
		return nil, fmt.Errorf("no authorization code received")
	}
	if result.State != state {
		return nil, fmt.Errorf("state mismatch, possible CSRF")
	}

	token, err := exchangeCodeForToken(config, result.Code, pkce.Verifier)
	if err != nil {
		return nil, fmt.Errorf("exchange code for token: %w", err)
	}
	return token, nil
}

func buildAuthURL(config *Config, codeChallenge, state string) string {
	params := url.Values{}
	params.Set("client_id", config.ClientID)
	params.Set("redirect_uri", config.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", config.Scope)
	params.Set("state", state)
	params.Set("code_challenge", codeChallenge)
	params.Set("code_challenge_method", "S256")
	return config.AuthURL + "?" + params.Encode()
}

func exchangeCodeForToken(config *Config, code, verifier string) (*Token, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", config.RedirectURL)
	data.Set("client_id", config.ClientID)
	data.Set("code_verifier", verifier)
	if config.ClientSecret != "" {
		data.Set("client_secret", config.ClientSecret)
	}

	req, err := http.NewRequest(http.MethodPost, config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: TokenRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parse token response: %w", err)
	}
	return &token, nil
}

func openBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	return cmd.Start()
}
