package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and validate utility tables",
}

var tableDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective utility table as TOML",
	Long: `Print the utility table in use (the built-in table, or --table) as a TOML
document that can be edited and passed back with --table.`,
	Args:    cobra.NoArgs,
	PreRunE: preRun,
	RunE: func(_ *cobra.Command, _ []string) error {
		table := stylemig.DefaultUtilityTable()
		if path := getStringWithFallback("table", "classify.table", ""); path != "" {
			var err error
			if table, err = stylemig.LoadUtilityTable(path); err != nil {
				return err
			}
		}
		return stylemig.EncodeUtilityTable(os.Stdout, table)
	},
}

var tableCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a TOML utility table",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		table, err := stylemig.LoadUtilityTable(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d entries OK\n", args[0], table.Len())
		return nil
	},
}

func init() {
	tableCmd.AddCommand(tableDumpCmd)
	tableCmd.AddCommand(tableCheckCmd)
}
