// budget is a command-line tool that turns Korean bank/card transaction
// exports into budget ledger rows and syncs them to Google Sheets.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/chan22222/budget/cmd/auth"
	"github.com/chan22222/budget/cmd/categorize"
	"github.com/chan22222/budget/cmd/parse"
	"github.com/chan22222/budget/cmd/root"
	"github.com/chan22222/budget/cmd/sheets"
	sheetsync "github.com/chan22222/budget/cmd/sync"
)

func init() {
	// Load .env before cobra parses anything so LOG_LEVEL applies to the
	// earliest messages. Missing file is fine.
	_ = godotenv.Load()
	configureEarlyLogLevel()

	root.Init()
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(sheetsync.Cmd)
	root.Cmd.AddCommand(sheets.Cmd)
	root.Cmd.AddCommand(auth.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func configureEarlyLogLevel() {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	switch level {
	case "debug":
		root.Log.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		root.Log.SetLevel(logrus.WarnLevel)
	case "error":
		root.Log.SetLevel(logrus.ErrorLevel)
	default:
		root.Log.SetLevel(logrus.InfoLevel)
	}
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
