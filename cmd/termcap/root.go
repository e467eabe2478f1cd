package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/shellcore/config"
	"github.com/lixenwraith/shellcore/dispatch"
	"github.com/lixenwraith/shellcore/env"
	"github.com/lixenwraith/shellcore/logging"
	"github.com/lixenwraith/shellcore/service"
	"github.com/lixenwraith/shellcore/terminal"
)

// Exit codes
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands
type rootFlags struct {
	term        string
	interactive bool
	jsonMode    bool
}

// session is the stack a subcommand works against
type session struct {
	cfg   *config.Config
	log   *logging.Logger
	store *terminal.Store
	vars  *env.Vars
	hub   *service.Hub
	disp  *dispatch.Service
}

func (s *session) dispatcher() *dispatch.Dispatcher {
	return s.disp.Dispatcher()
}

// app wires flags to the session. loader replaces the terminfo loader in tests
type app struct {
	flags  rootFlags
	loader terminal.Loader
	logger *logging.Logger
	sess   *session
}

// newRootCmd creates the top-level command with global flags and all subcommands registered
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "termcap",
		Short: "Query terminal capabilities the way the shell sees them",
		Long: "termcap sets up the terminal capability store from the environment, runs the\n" +
			"variable dispatcher's startup handlers and reports what they derived.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.stop()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.term, "term", "", "terminal type to use instead of $TERM")
	root.PersistentFlags().BoolVar(&a.flags.interactive, "interactive", false, "print setup warnings as an interactive shell would")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newInfoCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newDispatchCmd(a))
	root.AddCommand(newMetricsCmd(a))

	return root
}

// start builds the session and runs the startup handlers
func (a *app) start() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := a.logger
	if log == nil {
		lc := logging.DefaultConfig()
		lc.Level = cfg.Logging.Level
		lc.Development = cfg.Logging.Development
		lc.Categories = cfg.Logging.Categories
		if log, err = logging.New(lc); err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
	}

	vars := env.FromOS()
	if a.flags.term != "" {
		vars.Export("TERM", a.flags.term)
	}

	store := terminal.NewStore(a.loader)

	disp := dispatch.NewService(dispatch.Options{
		Store:       store,
		Interactive: a.flags.interactive,
	})

	hub := service.NewHub()
	if err := hub.Register(terminal.NewService(store)); err != nil {
		return nil, err
	}
	if err := hub.Register(disp); err != nil {
		return nil, err
	}
	if err := hub.Start(service.Inputs{Config: cfg, Logger: log, Vars: vars}); err != nil {
		return nil, err
	}

	a.sess = &session{cfg: cfg, log: log, store: store, vars: vars, hub: hub, disp: disp}
	return a.sess, nil
}

func (a *app) stop() error {
	if a.sess == nil {
		return nil
	}
	err := a.sess.hub.Stop()
	_ = a.sess.log.Sync()
	a.sess = nil
	return err
}

// execute runs the command line and maps errors to exit codes
func execute(args []string) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_ = a.stop()
		fmt.Fprintf(os.Stderr, "termcap: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return exitUserError
		}
		return exitSysError
	}
	return exitSuccess
}

// usageError marks errors caused by bad arguments
type usageError struct{ error }
