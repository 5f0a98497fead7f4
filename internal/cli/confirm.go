package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// confirmFunc asks a yes/no question and reports the answer.
type confirmFunc func(ctx context.Context, title string) (bool, error)

func pagesHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhConfirm shows a yes/no prompt on the terminal. Ctrl+C counts as no.
func huhConfirm(ctx context.Context, title string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(pagesHuhTheme()).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return confirmed, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// withYesFlag registers --yes/-y on a destructive command.
func withYesFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirmDestructive reports whether a destructive command may proceed.
// --yes, or a stdin that is not a terminal, skips the prompt. A declined
// prompt prints "Cancelled.".
func (rt *cmdEnv) confirmDestructive(cmd *cobra.Command, title string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes || !rt.interactive() {
		return true, nil
	}
	ok, err := rt.confirm(cmd.Context(), title)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
	}
	return ok, nil
}
