package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/recipe-cli/internal/render/text"
	"github.com/glabrego/recipe-cli/internal/tui"
	tuitheme "github.com/glabrego/recipe-cli/internal/tui/theme"
)

func runBrowse(args []string, errOut io.Writer) error {
	flags := newFlagSet("browse", errOut)
	if err := flags.parse(args); err != nil {
		return err
	}
	cfg, err := flags.config()
	if err != nil {
		return err
	}

	// Anything written to the terminal while the alt screen is up corrupts it.
	if cfg.LogPath != "" {
		logFile, err := tea.LogToFile(cfg.LogPath, "recipes")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	model := tui.NewModel(newService(cfg), tui.Options{
		Theme:         tuitheme.ByName(cfg.Theme),
		Logger:        log.Default(),
		InitialFilter: flags.filter(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runList(args []string, out, errOut io.Writer) error {
	flags := newFlagSet("list", errOut)
	if err := flags.parse(args); err != nil {
		return err
	}
	cfg, err := flags.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	visible, err := newService(cfg).Visible(ctx, flags.filter())
	if err != nil {
		return err
	}
	if len(visible) == 0 {
		fmt.Fprintln(out, "No recipes found.")
		return nil
	}
	for _, r := range visible {
		fmt.Fprintf(out, "%d\t%s\t%s\n", r.ID, text.Plain(r.Name), text.Plain(r.Cuisine))
	}
	return nil
}

func runExport(args []string, out, errOut io.Writer) error {
	flags := newFlagSet("export", errOut)
	if err := flags.parse(args); err != nil {
		return err
	}
	if flags.set.NArg() != 1 {
		return usageError{err: fmt.Errorf("export needs exactly one output path, got %d", flags.set.NArg())}
	}
	path := flags.set.Arg(0)
	cfg, err := flags.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := newService(cfg).Export(ctx, path, flags.filter())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "exported %d recipes to %s\n", n, path)
	return nil
}
