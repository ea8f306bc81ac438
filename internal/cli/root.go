package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shipsite",
	Short: "Deploy static sites to cloud storage",
	Long: `Shipsite deploys static web applications straight from a GitHub
repository to a publicly hosted storage bucket.

It clones the repository, detects the framework (React, Next.js or
Angular), runs the framework's own build and uploads the output with
sensible content types and cache headers:
  • One command from repository URL to live website
  • Credentials encrypted at rest under ~/.shipsite
  • Tracked buckets can be torn down again with 'shipsite rollback'`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(versionCmd)
}
