package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .stylemig.yaml config file",
	Long:  `Create a .stylemig.yaml configuration file in the current directory with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# stylemig configuration
# Precedence: flags > STYLEMIG_* environment > this file > defaults

verbose: false
color: false
log-format: text           # text | json
output-format: text        # text | issues | summary | json | markdown

scan:
  root: src
  include:
    - "**/*.tsx"
    - "**/*.jsx"
  exclude:
    - "**/node_modules/**"
  gitignore: true
  workers: 1               # >1 analyzes files in parallel
  top: 30                  # rows in the most-common-styles table
  files-limit: 20          # rows in the files-by-occurrence listing

parse:
  locator: pattern         # pattern | balanced | syntax

classify:
  table: ""                # TOML utility table; empty = built-in
  pixel-strings: false     # treat '16px' as a spacing/gap size
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
