package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"headerscroll/internal/config"
	"headerscroll/internal/sim"
	"headerscroll/internal/tui/widgets/diff"
)

// ErrTraceMismatch is returned when a replay does not match the expected trace.
var ErrTraceMismatch = errors.New("trace differs from expected")

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var scriptPath, expectPath string
	var update bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a gesture script headlessly and print the trace",
		Long: `Replay a JSON gesture script against the layout without a terminal.
Each step prints one trace line; animation frames are synthesized at the
configured frame interval. With --expect the trace is compared against a
file and any difference is shown as a diff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(cmd)
			if err != nil {
				return err
			}
			script, err := sim.LoadScript(scriptPath)
			if err != nil {
				return err
			}
			trace := replay(layout, script, log.Printf)

			out := cmd.OutOrStdout()
			if expectPath == "" {
				fmt.Fprintln(out, strings.Join(trace, "\n"))
				return nil
			}
			if update {
				if err := os.WriteFile(expectPath, []byte(strings.Join(trace, "\n")+"\n"), 0644); err != nil {
					return fmt.Errorf("write expected trace: %w", err)
				}
				fmt.Fprintf(out, "wrote %d lines to %s\n", len(trace), expectPath)
				return nil
			}
			data, err := os.ReadFile(expectPath)
			if err != nil {
				return fmt.Errorf("read expected trace: %w", err)
			}
			expected := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			if d := diff.Lines(expected, trace, opts.noColor); d != "" {
				fmt.Fprint(out, d)
				return fmt.Errorf("%w: %s", ErrTraceMismatch, expectPath)
			}
			fmt.Fprintf(out, "trace matches %s (%d lines)\n", expectPath, len(trace))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&scriptPath, "script", "s", "", "gesture script JSON")
	f.StringVarP(&expectPath, "expect", "e", "", "expected trace file")
	f.BoolVar(&update, "update", false, "write the trace to the --expect file instead of comparing")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func replay(layout *config.Layout, script *sim.Script, logf func(string, ...any)) []string {
	root := layout.Build(config.BuildOptions{NoColor: true, Logf: logf})
	return sim.New(root, layout.FrameInterval()).Run(script)
}
