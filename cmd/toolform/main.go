package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/studiowebux/toolform/internal/catalog"
	"github.com/studiowebux/toolform/internal/clidispatch"
	"github.com/studiowebux/toolform/internal/config"
	"github.com/studiowebux/toolform/internal/oauth"
	"github.com/studiowebux/toolform/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.CatalogURL == "" {
		return fmt.Errorf("no catalog configured; set catalog_url in %s", config.SettingsFile)
	}

	loadToken := tokenLoader(settings)
	token, _, err := loadToken()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	client := catalog.NewClient(settings.CatalogURL, token)
	tools, err := catalog.FetchCatalog(client, config.CatalogCacheFile)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	rootCmd := &cobra.Command{
		Use:     "toolform",
		Short:   "Drive a remote tool catalog interactively or from a sub-command",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stdin.Fd()) {
				return cmd.Help()
			}
			return tui.NewRunner(client, loadToken).Run(tools, nil)
		},
	}
	clidispatch.Register(rootCmd, tools, client, loadToken)

	return rootCmd.Execute()
}

// tokenLoader resolves the bearer token used for every catalog call,
// preferring a previously saved OAuth token, running the PKCE browser flow
// when the stored token is missing or expired and OAuth is configured, and
// otherwise falling back to a static token from the environment.
func tokenLoader(settings *config.Settings) func() (string, string, error) {
	return func() (string, string, error) {
		if stored, ok, err := oauth.LoadToken(config.TokenFile); err != nil {
			return "", "", fmt.Errorf("load stored token: %w", err)
		} else if ok && !stored.Expired() {
			return stored.AccessToken, "oauth", nil
		}

		if settings.AuthURL != "" {
			tok, err := oauth.StartFlow(&oauth.Config{
				AuthURL:      settings.AuthURL,
				TokenURL:     settings.TokenURL,
				ClientID:     settings.ClientID,
				ClientSecret: settings.ClientSecret,
				RedirectURL:  settings.RedirectURL,
				Scope:        settings.Scope,
				CallbackPort: settings.CallbackPort,
			})
			if err != nil {
				return "", "", fmt.Errorf("oauth flow: %w", err)
			}
			if err := oauth.SaveToken(config.TokenFile, tok); err != nil {
				return "", "", fmt.Errorf("save token: %w", err)
			}
			return tok.AccessToken, "oauth", nil
		}

		if env := os.Getenv("TOOLFORM_TOKEN"); env != "" {
			return env, "token", nil
		}

		return "", "token", nil
	}
}
