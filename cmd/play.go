package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yclai/readquest/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay builds dependencies and launches the TUI. Also backs the bare
// "readquest" invocation.
func runPlay(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return tui.Run(tui.Options{
		Generator: d.generator,
		Engine:    d.engine,
		Story:     d.story,
		Sink:      d.sink,
		Events:    d.store.EventRepo(),
	})
}
