package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yclai/readquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "readquest",
	Short: "AI reading-comprehension quiz for kids",
	Long:  "ReadQuest is a reading-comprehension quiz tool: pick a level, answer AI-generated questions about the story, get graded on the spot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides READQUEST_DB env var)")
	rootCmd.PersistentFlags().String("config", ".", "Directory holding readquest.yaml")
	rootCmd.PersistentFlags().String("story", "", "Path to the story text file (overrides config)")
	rootCmd.PersistentFlags().String("records", "", "Path to the attempt record CSV (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then READQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
