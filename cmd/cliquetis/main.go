package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Zigazou/cliquetis/internal/cli"
	"github.com/Zigazou/cliquetis/internal/config"
	"github.com/Zigazou/cliquetis/internal/history"
	"github.com/Zigazou/cliquetis/internal/logger"
	"github.com/Zigazou/cliquetis/internal/tui"
	v "github.com/Zigazou/cliquetis/internal/version"
)

var (
	version = "0.1.0"
)

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cliquetis <tool-file>",
	Short: "Cliquetis - interactive forms for command-line tools",
	Long: `Cliquetis turns a declarative tool description (JSON or YAML) into an
interactive form, runs the described command and displays its output as
plain text, a table or a collapsible JSON tree.

Examples:
  cliquetis du.json                    # Open the form for du.json
  cliquetis run du.json                # Run with defaults, print to stdout
  cliquetis run du.json -e depth=2     # Override a field value
  cliquetis history                    # Show recent runs
  cliquetis --help                     # Show help`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initialize(); err != nil {
			return err
		}
		return runTUI(args[0])
	},
}

var runCmd = &cobra.Command{
	Use:   "run <tool-file>",
	Short: "Execute a tool description without the form",
	Long: `Execute a tool description in non-interactive mode. Every field takes
its default value; use -e to override individual fields by key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initialize(); err != nil {
			return err
		}
		return cli.Run(cli.RunOptions{
			FilePath:  args[0],
			ExtraVars: flagExtraVars,
			NoHistory: flagNoHistory,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version and check for updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("cliquetis %s\n", version)

		available, latest, url, err := v.CheckForUpdate(version)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if available {
			fmt.Printf("A newer version is available: %s\n%s\n", latest, url)
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initialize(); err != nil {
			return err
		}
		if flagHistoryClear {
			return clearHistory()
		}
		return showHistory(flagHistoryLimit)
	},
}

var (
	flagDebug        bool
	flagExtraVars    []string
	flagNoHistory    bool
	flagHistoryLimit int
	flagHistoryClear bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to the log file")

	runCmd.Flags().StringArrayVarP(&flagExtraVars, "extra-vars", "e", []string{}, "Set field value (key=value), can be repeated")
	runCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this run")

	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// initialize prepares the config directory and the logger for every
// command.
func initialize() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := logger.Setup(flagDebug, config.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// runTUI loads the tool description and starts the form.
func runTUI(filePath string) error {
	tool, err := config.Load(filePath)
	if err != nil {
		return err
	}
	return tui.Run(tool, tui.DefaultTheme())
}

// showHistory prints the most recent runs as a table.
func showHistory(limit int) error {
	manager, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer manager.Close()

	entries, err := manager.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"When", "Tool", "Action", "Command", "Viewer", "Exit", "Duration"})
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Tool,
			entry.Action,
			strings.Join(entry.Argv, " "),
			entry.Viewer,
			entry.ExitCode,
			fmt.Sprintf("%dms", entry.DurationMs),
		})
	}
	fmt.Println(t.Render())

	return nil
}

// clearHistory deletes every recorded run.
func clearHistory() error {
	manager, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer manager.Close()

	if err := manager.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}
