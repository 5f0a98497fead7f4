// Package cli implements the pages command tree.
package cli

import (
	"fmt"

	"github.com/alexanderramin/pages/internal/app"
	"github.com/alexanderramin/pages/internal/config"
	"github.com/alexanderramin/pages/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Opener builds the App a command runs against. app.New satisfies it.
type Opener func(cfg *config.Config, logger *zap.Logger) (*app.App, error)

// cmdEnv carries what PersistentPreRunE resolved to the subcommands.
type cmdEnv struct {
	open        Opener
	confirm     confirmFunc
	interactive func() bool
	configPath  string
	dbPath      string
	verbose     bool

	cfg *config.Config
	app *app.App
}

// NewRootCmd creates the top-level "pages" command and registers all
// subcommands. Commands that touch the database open it through open.
func NewRootCmd(open Opener) *cobra.Command {
	return newRootCmd(&cmdEnv{open: open, confirm: huhConfirm, interactive: stdinIsTerminal})
}

func newRootCmd(rt *cmdEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "pages",
		Short:         "Site page hierarchy and menu service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			if rt.dbPath != "" {
				cfg.Database.Path = rt.dbPath
			}
			rt.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "Config file (default $PAGES_CONFIG or ./config.yaml)")
	root.PersistentFlags().StringVar(&rt.dbPath, "db", "", "SQLite database path (overrides database.path)")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log service events to stderr")

	root.AddCommand(
		newServeCmd(rt),
		newMigrateCmd(rt),
		newSiteCmd(rt),
		newGroupCmd(rt),
		newPageCmd(rt),
		newMenuCmd(rt),
		newImportCmd(rt),
	)
	closeAfterRun(root, rt)

	return root
}

// closeAfterRun wraps every runnable command so the App it opened is closed
// whether or not the command succeeded.
func closeAfterRun(cmd *cobra.Command, rt *cmdEnv) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := rt.close(); err == nil {
					err = cerr
				}
			}()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, rt)
	}
}

func (rt *cmdEnv) close() error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	return err
}

// App opens the application on first use. Only serve logs by default;
// other commands stay quiet unless --verbose is set.
func (rt *cmdEnv) App(serving bool) (*app.App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	logger := logging.Nop()
	if serving || rt.verbose {
		l, err := logging.New(rt.cfg.Log.Level, rt.cfg.Log.Development)
		if err != nil {
			return nil, err
		}
		logger = l
	}
	a, err := rt.open(rt.cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening app: %w", err)
	}
	rt.app = a
	return a, nil
}
