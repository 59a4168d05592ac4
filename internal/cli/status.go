package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcat-ai/kicat/internal/board"
	"github.com/smartcat-ai/kicat/internal/inspect"
)

var statusBoardPath string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a read-only report of a board file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusBoardPath == "" {
			return fmt.Errorf("a board file is required (--board)")
		}
		accessor := board.NewSimBoard(statusBoardPath)

		report, err := inspect.Report(accessor)
		if err != nil {
			return err
		}
		fmt.Print(report)

		layers, err := inspect.LayerReport(accessor)
		if err != nil {
			return err
		}
		fmt.Print(layers)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusBoardPath, "board", "", "board file to inspect")
	rootCmd.AddCommand(statusCmd)
}
