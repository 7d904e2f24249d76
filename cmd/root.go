package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"headerscroll/internal/config"
	"headerscroll/internal/scroll/curve"
)

type rootOptions struct {
	configPath string
	logFile    string
	noColor    bool
	fast       bool
	settle     bool

	logCloser io.Closer
}

// NewRootCmd builds the command tree. Without a subcommand it runs the demo.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "headerscroll",
		Short:         "Collapsible header scroll container for the terminal",
		Long:          `headerscroll renders nested collapsible headers over scrollable lists and replays scripted gestures against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logCloser != nil {
				opts.logCloser.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "layout JSON file (default: built-in layout)")
	pf.StringVar(&opts.logFile, "log-file", "", "append debug logs to this file")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colors (also honors NO_COLOR)")
	pf.BoolVar(&opts.fast, "fast", false, "use the fast deceleration rate")
	pf.BoolVar(&opts.settle, "settle", true, "spring partly collapsed headers to the nearer bound")

	root.AddCommand(newDemoCmd(opts), newSimulateCmd(opts), newInitCmd(), newVersionCmd(version))
	return root
}

func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to a file when asked. The terminal
// belongs to the UI, so logs are discarded otherwise.
func (o *rootOptions) setupLogging() error {
	if o.logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(o.logFile, "headerscroll")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	o.logCloser = f
	return nil
}

// layout loads the configured layout and applies flag overrides.
func (o *rootOptions) layout(cmd *cobra.Command) (*config.Layout, error) {
	l := config.Default()
	if o.configPath != "" {
		var err error
		if l, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.fast {
		l.Deceleration.Rate = curve.DecelerationRateFast
	}
	if cmd.Flags().Changed("settle") {
		l.Settle = o.settle
	}
	return l, nil
}
