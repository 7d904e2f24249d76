package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"headerscroll/internal/config"
)

const defaultConfig = "headerscroll.json"

func newInitCmd() *cobra.Command {
	var force, interactive bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in layout to a file",
		Long: `Write the built-in layout to a file. With --interactive the root title
and header height are asked for first. An existing file is only replaced with
--force or after confirming at a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfig
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				if !confirmOverwrite(path) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			layout := config.Default()
			if interactive {
				if err := promptRoot(&layout.Root); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}
			if err := layout.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, layout); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for the root header")
	return cmd
}

// confirmOverwrite asks before replacing path. Without a terminal the answer
// is no.
func confirmOverwrite(path string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s exists. Overwrite", path),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func promptRoot(n *config.Node) error {
	title := promptui.Prompt{
		Label:   "Root title",
		Default: n.Title,
		Validate: func(s string) error {
			if s == "" {
				return errors.New("title must not be empty")
			}
			return nil
		},
	}
	t, err := title.Run()
	if err != nil {
		return err
	}
	height := promptui.Prompt{
		Label:   "Max header height (rows)",
		Default: strconv.FormatFloat(n.MaxHeaderHeight, 'f', -1, 64),
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 {
				return errors.New("enter a number >= 0")
			}
			return nil
		},
	}
	h, err := height.Run()
	if err != nil {
		return err
	}
	n.Title = t
	n.MaxHeaderHeight, _ = strconv.ParseFloat(h, 64)
	return nil
}
