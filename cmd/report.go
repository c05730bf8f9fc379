package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yclai/readquest/internal/config"
	"github.com/yclai/readquest/internal/record"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show recorded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if p, _ := cmd.Flags().GetString("records"); p != "" {
			cfg.Records.Path = p
		}
		sink := record.NewCSVSink(cfg.Records.Path)

		if raw, _ := cmd.Flags().GetBool("csv"); raw {
			return sink.Export(os.Stdout)
		}

		attempts, err := sink.ReadAll()
		if err != nil {
			return fmt.Errorf("read records: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-10s  %-5s  %-10s  %-16s  %-5s  %-6s  %-5s  %-5s  %s\n",
			"Class", "Seat", "Name", "Time", "Level", "Choice", "Open", "Total", "Result")
		fmt.Println(strings.Repeat("─", 90))

		passed := 0
		for _, a := range attempts {
			result := "未通過"
			if a.Passed() {
				result = "通過"
				passed++
			}
			fmt.Printf("%-10s  %-5s  %-10s  %-16s  %-5s  %-6d  %-5d  %-5d  %s\n",
				a.Class, a.Seat, a.Name,
				a.Timestamp.Format("2006-01-02 15:04"),
				a.Level, a.ChoiceScore, a.OpenScore, a.Total, result)
		}

		fmt.Printf("\n%d attempts, %d passed (threshold %d)\n",
			len(attempts), passed, record.PassThreshold)
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("csv", false, "Dump the raw CSV instead of a table")
}
