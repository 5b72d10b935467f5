// Package sheetstore implements the remote budget ledger on Google Sheets:
// one sheet per calendar month, transaction rows in a fixed column window.
package sheetstore

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope is the spreadsheet access scope requested during consent.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// Token source labels, reported for observability.
const (
	SourceRuntime     = "runtime"
	SourceEnvironment = "environment"
	SourceFile        = "file"
	SourceNone        = "none"
)

// CredentialResolver resolves OAuth client credentials and user tokens with a
// fixed priority: runtime-injected token, then the GOOGLE_TOKEN environment
// variable, then the persisted token file. Client credentials come from the
// GOOGLE_CREDENTIALS JSON, then GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET, then
// the credentials file. A resolver is constructed once per process and
// passed by reference wherever credentials are needed.
type CredentialResolver struct {
	tokenFile       string
	credentialsFile string

	mu      sync.RWMutex
	runtime *oauth2.Token
}

// NewCredentialResolver creates a resolver over the given token and client
// credential file paths.
func NewCredentialResolver(tokenFile, credentialsFile string) *CredentialResolver {
	return &CredentialResolver{
		tokenFile:       tokenFile,
		credentialsFile: credentialsFile,
	}
}

// SetToken injects a token obtained at runtime (e.g. from a fresh OAuth
// exchange). Runtime tokens take priority over every other source.
func (r *CredentialResolver) SetToken(tok *oauth2.Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runtime = tok
}

// Token resolves the user token and reports which source supplied it.
func (r *CredentialResolver) Token() (*oauth2.Token, string, error) {
	r.mu.RLock()
	runtime := r.runtime
	r.mu.RUnlock()

	if runtime != nil {
		return runtime, SourceRuntime, nil
	}

	if raw := os.Getenv("GOOGLE_TOKEN"); raw != "" {
		tok, err := parseToken([]byte(cleanJSONEnv(raw)))
		if err != nil {
			return nil, SourceNone, fmt.Errorf("failed to parse GOOGLE_TOKEN: %w", err)
		}
		return tok, SourceEnvironment, nil
	}

	data, err := os.ReadFile(r.tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, SourceNone, fmt.Errorf("no stored token: %w", err)
		}
		return nil, SourceNone, fmt.Errorf("error reading token file: %w", err)
	}
	tok, err := parseToken(data)
	if err != nil {
		return nil, SourceNone, fmt.Errorf("failed to parse token file %s: %w", r.tokenFile, err)
	}
	return tok, SourceFile, nil
}

// SaveToken persists the token to the token file for later runs. Failure is
// returned but non-fatal for callers that only need the in-memory token.
func (r *CredentialResolver) SaveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(r.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", r.tokenFile, err)
	}
	return nil
}

// OAuthConfig resolves the OAuth client configuration. redirectURL may be
// empty when the config is only used to construct an HTTP client.
func (r *CredentialResolver) OAuthConfig(redirectURL string) (*oauth2.Config, error) {
	if raw := os.Getenv("GOOGLE_CREDENTIALS"); raw != "" {
		cfg, err := google.ConfigFromJSON([]byte(cleanJSONEnv(raw)), Scope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GOOGLE_CREDENTIALS: %w", err)
		}
		if redirectURL != "" {
			cfg.RedirectURL = redirectURL
		}
		return cfg, nil
	}

	if id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		return &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{Scope},
			RedirectURL:  redirectURL,
		}, nil
	}

	data, err := os.ReadFile(r.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("no Google client credentials found (set GOOGLE_CREDENTIALS or provide %s): %w", r.credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.credentialsFile, err)
	}
	if redirectURL != "" {
		cfg.RedirectURL = redirectURL
	}
	return cfg, nil
}

func parseToken(data []byte) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("token has no access or refresh token")
	}
	return &tok, nil
}

// cleanJSONEnv strips the stray newlines some deployment dashboards insert
// into pasted JSON values.
func cleanJSONEnv(raw string) string {
	raw = strings.ReplaceAll(raw, "\r", "")
	raw = strings.ReplaceAll(raw, "\n", "")
	return strings.TrimSpace(raw)
}

var spreadsheetURLPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetIDFromInput accepts either a bare spreadsheet ID or a full
// docs.google.com URL and returns the ID.
func SpreadsheetIDFromInput(input string) string {
	if strings.Contains(input, "docs.google.com/spreadsheets") {
		if m := spreadsheetURLPattern.FindStringSubmatch(input); m != nil {
			return m[1]
		}
	}
	return strings.TrimSpace(input)
}
