// Package auth implements the Google OAuth commands used to authorize the
// ledger sync.
package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/chan22222/budget/cmd/root"
)

var (
	redirectURL string
	authCode    string
)

// Cmd is the auth command group.
var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to the ledger spreadsheet",
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the Google consent URL",
	Long: `Print the URL to visit in a browser. After granting access, Google
redirects to the configured redirect URL with a "code" query parameter;
pass that code to "budget auth exchange".`,
	Run: urlFunc,
}

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Exchange an authorization code for a token",
	Run:   exchangeFunc,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the current token comes from",
	Run:   statusFunc,
}

func init() {
	Cmd.PersistentFlags().StringVar(&redirectURL, "redirect", "http://localhost:3000/api/google/callback", "OAuth redirect URL registered with the client")
	exchangeCmd.Flags().StringVar(&authCode, "code", "", "Authorization code from the consent redirect")
	exchangeCmd.MarkFlagRequired("code")

	Cmd.AddCommand(urlCmd)
	Cmd.AddCommand(exchangeCmd)
	Cmd.AddCommand(statusCmd)
}

func urlFunc(cmd *cobra.Command, args []string) {
	resolver := root.NewCredentialResolver()
	cfg, err := resolver.OAuthConfig(redirectURL)
	if err != nil {
		root.Log.Fatalf("Error building the OAuth config: %v", err)
	}
	url := cfg.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Println(url)
}

func exchangeFunc(cmd *cobra.Command, args []string) {
	resolver := root.NewCredentialResolver()
	cfg, err := resolver.OAuthConfig(redirectURL)
	if err != nil {
		root.Log.Fatalf("Error building the OAuth config: %v", err)
	}
	tok, err := cfg.Exchange(context.Background(), authCode)
	if err != nil {
		root.Log.Fatalf("Error exchanging the authorization code: %v", err)
	}
	resolver.SetToken(tok)
	if err := resolver.SaveToken(tok); err != nil {
		root.Log.Fatalf("Error saving the token: %v", err)
	}
	root.Log.Infof("Token saved to %s", root.Cfg.Sheets.TokenFile)
}

func statusFunc(cmd *cobra.Command, args []string) {
	resolver := root.NewCredentialResolver()
	tok, source, err := resolver.Token()
	if err != nil {
		root.Log.Warnf("No usable token found: %v", err)
		return
	}
	root.Log.Infof("Token source: %s", source)
	if !tok.Expiry.IsZero() {
		root.Log.Infof("Token expiry: %s", tok.Expiry.Format("2006-01-02 15:04:05"))
	}
}
