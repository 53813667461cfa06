package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cli_chat",
	Short: "Companion pipeline from the terminal.",
	Long: `cli_chat runs the companion response pipeline without the HTTP server.
chat talks to the configured LLM using in-memory storage; analyze and safety
run a single deterministic stage over a piece of text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(chatCmd, analyzeCmd, safetyCmd, tokenCmd)
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
