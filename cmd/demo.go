package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"headerscroll/internal/tui"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open the interactive demo",
		Long:  `Open the layout full screen. Drag with the mouse, use the wheel or j/k, tab between lists and press ? for help.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}
}

func runDemo(cmd *cobra.Command, opts *rootOptions) error {
	layout, err := opts.layout(cmd)
	if err != nil {
		return err
	}
	log.Printf("demo: starting with root %q", layout.Root.Title)
	return tui.Run(tui.Options{Layout: layout, NoColor: opts.noColor, Logf: log.Printf})
}
