package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// TokenFilePath returns the default token cache,
// ~/.planner/auth/msgraph_tokens.json.
func TokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".planner", "auth", "msgraph_tokens.json"), nil
}

// Auth obtains Microsoft Graph tokens through the OAuth2 device code flow and
// caches them on disk.
type Auth struct {
	TenantID  string
	ClientID  string
	TokenPath string
	// Prompt receives the device code sign-in instructions.
	Prompt io.Writer
	Logger *slog.Logger
}

func (a *Auth) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID: a.ClientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(a.TenantID, "devicecode"),
			TokenURL:      msEndpoint(a.TenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

func (a *Auth) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *Auth) tokenPath() (string, error) {
	if a.TokenPath != "" {
		return a.TokenPath, nil
	}
	return TokenFilePath()
}

// LoadToken reads the cached token. It returns nil, nil when none is cached.
func (a *Auth) LoadToken() (*oauth2.Token, error) {
	path, err := a.tokenPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// SaveToken atomically writes tok to the token cache.
func (a *Auth) SaveToken(tok *oauth2.Token) error {
	path, err := a.tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// TokenSource returns a token source backed by the cache. A valid cached
// token is used as is, an expired one is refreshed, and otherwise the device
// code flow is started. Refreshed tokens are written back to the cache.
func (a *Auth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	cfg := a.config()
	log := a.logger()

	tok, err := a.LoadToken()
	if err != nil {
		log.Warn("ignoring cached token", "error", err)
		tok = nil
	}

	if tok != nil && !tok.Valid() && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err != nil {
			log.Warn("token refresh failed, re-authenticating", "error", err)
			tok = nil
		} else {
			tok = refreshed
			if err := a.SaveToken(tok); err != nil {
				log.Warn("could not save refreshed token", "error", err)
			}
		}
	}

	if tok == nil || !tok.Valid() {
		tok, err = a.deviceFlow(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	return &savingTokenSource{ts: cfg.TokenSource(ctx, tok), auth: a, last: tok.AccessToken}, nil
}

func (a *Auth) deviceFlow(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	out := a.Prompt
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(out, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(out, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(out)

	tok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := a.SaveToken(tok); err != nil {
		a.logger().Warn("could not save token", "error", err)
	}
	return tok, nil
}

// savingTokenSource persists every newly issued token.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	auth *Auth
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.auth.SaveToken(tok); err != nil {
			s.auth.logger().Warn("could not save refreshed token", "error", err)
		}
	}
	return tok, nil
}
