package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/codediagram/internal/config"
	"github.com/matzehuels/codediagram/pkg/buildinfo"
	"github.com/matzehuels/codediagram/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, and pipeline and cache hooks
//     report every stage
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "codediagram draws the structure of a Python file",
		Long: `codediagram reads a Python source file, extracts its classes, functions,
methods and (optionally) control flow, and writes a Markdown diagram of that
structure as a line tree, nested boxes, an ASCII flow chart or a GitHub
Mermaid flowchart.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if verbose {
				level = LogDebug
				hooks := newLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.FileName+")")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
