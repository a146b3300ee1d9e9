// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-auth-admin",
	Short: "GoAuth-Admin is an identity and authorization service",
	Long: `GoAuth-Admin is an identity and authorization service that manages
users, roles and permissions, authenticates with signed session tokens and
records every operation in an append-only audit ledger.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
