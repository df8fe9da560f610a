package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"slidecast/internal/cli"
)

func main() {
	// Optional .env holds GEMINI_API_KEYS for the premium provider.
	_ = godotenv.Load()

	deps := &cli.Dependencies{}
	rootCmd := cli.NewRootCmd(deps)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
