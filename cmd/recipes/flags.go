package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/glabrego/recipe-cli/internal/app"
	"github.com/glabrego/recipe-cli/internal/catalog"
	"github.com/glabrego/recipe-cli/internal/config"
	"github.com/glabrego/recipe-cli/internal/recipes"
)

// commandFlags are shared by every subcommand. Values set on the command line
// override the config file and environment.
type commandFlags struct {
	set        *flag.FlagSet
	configPath string
	apiURL     string
	timeout    time.Duration
	logPath    string
	theme      string
	category   string
	search     string
}

func newFlagSet(name string, errOut io.Writer) *commandFlags {
	f := &commandFlags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.set.SetOutput(errOut)
	f.set.SortFlags = false

	f.set.StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.config/recipes/config.toml)")
	f.set.StringVar(&f.apiURL, "api-url", "", "recipe catalog endpoint")
	f.set.DurationVar(&f.timeout, "timeout", 0, "catalog fetch timeout, 0 waits indefinitely")
	f.set.StringVar(&f.logPath, "log-path", "", "write diagnostics to this file while browsing")
	f.set.StringVar(&f.theme, "theme", "", "color theme: mocha or latte")
	f.set.StringVar(&f.category, "category", catalog.AllCategory, "only show recipes with this exact tag")
	f.set.StringVarP(&f.search, "search", "s", "", "only show recipes whose name contains this text")
	return f
}

func (f *commandFlags) parse(args []string) error {
	if err := f.set.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return usageError{err: err}
	}
	return nil
}

func (f *commandFlags) config() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if f.set.Changed("api-url") {
		cfg.APIURL = strings.TrimSpace(f.apiURL)
	}
	if f.set.Changed("timeout") {
		cfg.FetchTimeout = f.timeout
	}
	if f.set.Changed("log-path") {
		cfg.LogPath = strings.TrimSpace(f.logPath)
	}
	if f.set.Changed("theme") {
		cfg.Theme = strings.TrimSpace(f.theme)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

func (f *commandFlags) filter() catalog.FilterState {
	state := catalog.DefaultFilter()
	if f.category != "" {
		state.Category = f.category
	}
	state.Search = f.search
	return state
}

func newService(cfg config.Config) *app.Service {
	return app.NewService(recipes.NewClient(cfg.APIURL, nil), cfg.FetchTimeout)
}
