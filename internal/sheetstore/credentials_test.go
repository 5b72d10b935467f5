package sheetstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenPriority(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(tokenFile, []byte(`{"access_token":"from-file"}`), 0600))

	r := NewCredentialResolver(tokenFile, filepath.Join(dir, "credentials.json"))

	// File only.
	tok, source, err := r.Token()
	require.NoError(t, err)
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, "from-file", tok.AccessToken)

	// Environment beats the file.
	t.Setenv("GOOGLE_TOKEN", `{"access_token":"from-env"}`)
	tok, source, err = r.Token()
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, source)
	assert.Equal(t, "from-env", tok.AccessToken)

	// A runtime token beats everything.
	r.SetToken(&oauth2.Token{AccessToken: "from-runtime"})
	tok, source, err = r.Token()
	require.NoError(t, err)
	assert.Equal(t, SourceRuntime, source)
	assert.Equal(t, "from-runtime", tok.AccessToken)
}

func TestTokenMissingEverywhere(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOOGLE_TOKEN", "")

	r := NewCredentialResolver(filepath.Join(dir, "token.json"), filepath.Join(dir, "credentials.json"))
	_, source, err := r.Token()
	assert.Error(t, err)
	assert.Equal(t, SourceNone, source)
}

func TestTokenEnvToleratesPastedNewlines(t *testing.T) {
	t.Setenv("GOOGLE_TOKEN", "{\"access_token\":\n\"from-env\"}\n")

	r := NewCredentialResolver(filepath.Join(t.TempDir(), "token.json"), "credentials.json")
	tok, source, err := r.Token()
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, source)
	assert.Equal(t, "from-env", tok.AccessToken)
}

func TestSaveTokenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token.json")

	r := NewCredentialResolver(tokenFile, "credentials.json")
	require.NoError(t, r.SaveToken(&oauth2.Token{AccessToken: "saved", RefreshToken: "refresh"}))

	fresh := NewCredentialResolver(tokenFile, "credentials.json")
	tok, source, err := fresh.Token()
	require.NoError(t, err)
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, "saved", tok.AccessToken)
	assert.Equal(t, "refresh", tok.RefreshToken)

	info, err := os.Stat(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestParseTokenRejectsEmpty(t *testing.T) {
	_, err := parseToken([]byte(`{}`))
	assert.Error(t, err)

	_, err = parseToken([]byte(`{"refresh_token":"only-refresh"}`))
	assert.NoError(t, err)
}

func TestOAuthConfigFromClientIDPair(t *testing.T) {
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	r := NewCredentialResolver("token.json", filepath.Join(t.TempDir(), "credentials.json"))
	cfg, err := r.OAuthConfig("http://localhost:3000/callback")
	require.NoError(t, err)
	assert.Equal(t, "client-id", cfg.ClientID)
	assert.Equal(t, "http://localhost:3000/callback", cfg.RedirectURL)
	assert.Equal(t, []string{Scope}, cfg.Scopes)
}

func TestOAuthConfigMissingEverywhere(t *testing.T) {
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	r := NewCredentialResolver("token.json", filepath.Join(t.TempDir(), "credentials.json"))
	_, err := r.OAuthConfig("")
	assert.Error(t, err)
}

func TestSpreadsheetIDFromInput(t *testing.T) {
	assert.Equal(t, "abc123_-XYZ", SpreadsheetIDFromInput("abc123_-XYZ"))
	assert.Equal(t, "abc123", SpreadsheetIDFromInput("https://docs.google.com/spreadsheets/d/abc123/edit#gid=0"))
	assert.Equal(t, "trimmed", SpreadsheetIDFromInput("  trimmed  "))
}
