// File: cmd/root.go
package cmd

import (
	"cursorruler/pkg/combine"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

// RootCmd is the base command. Invoked without a subcommand it runs the
// full combine-and-merge pass over the current project.
var RootCmd = &cobra.Command{
	Use:   "cursorruler [output_file]",
	Short: "cursorruler combines project sources into a Cursor rules file",
	Long: `cursorruler combines the project's source files into a single minified
document and splices it into the rules template to produce the final rules
file. The optional argument overrides the intermediate output path.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := combine.FromEnv()
		if len(args) == 1 {
			cfg.CombinedPath = args[0]
		}
		return combine.Run(cfg, logger)
	},
}

// Execute runs the root command with the given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}
