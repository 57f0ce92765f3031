package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/flomo-relay/internal/config"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/internal/relayclient"
	"github.com/evgeniy-krivenko/flomo-relay/internal/usecase/notes"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

// errReported means the failure was already printed for the user.
var errReported = errors.New("reported")

type app struct {
	cfg     config.Config
	printer *printer

	serverURL  string
	configPath string
	output     string
	verbose    bool
	direct     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "flomo",
		Short:         "Send notes to Flomo through the relay or straight to the webhook",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.serverURL, "server", "", "relay url (default $FLOMO_SERVER_URL or http://localhost:12345)")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "read configuration from a yaml, json, toml or env file")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format: text, json or yaml")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&a.direct, "direct", false, "skip the relay and call $FLOMO_API_URL directly")

	cmd.AddCommand(
		newTestCmd(a),
		newWriteCmd(a),
		newEnvCmd(),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	level := "warn"
	if a.verbose {
		level = "debug"
	}

	if err := slogx.InitGlobal(cmd.ErrOrStderr(), level, true); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	p, err := newPrinter(cmd.OutOrStdout(), a.output)
	if err != nil {
		return err
	}
	a.printer = p

	if a.configPath != "" {
		a.cfg, err = config.ParseFile(a.configPath)
	} else {
		a.cfg, err = config.Parse()
	}
	if err != nil {
		return err
	}

	if a.serverURL == "" {
		a.serverURL = a.cfg.Client.ServerURL
	}

	return nil
}

func (a *app) relay(attempts uint) (*relayclient.Client, error) {
	if attempts == 0 {
		attempts = 1
	}

	return relayclient.New(relayclient.NewOptions(
		a.serverURL,
		relayclient.WithRetryAttempts(attempts),
		relayclient.WithLogger(slogx.Default()),
	))
}

// directNotes builds the direct path: the same usecase the relay uses, talking to
// the Flomo webhook from this process.
func (a *app) directNotes() (*notes.Usecase, error) {
	endpoint, err := a.cfg.Endpoint()
	if err != nil {
		return nil, err
	}

	client, err := flomo.New(flomo.NewOptions(
		endpoint,
		flomo.WithTimeout(a.cfg.Flomo.Timeout),
		flomo.WithUserAgent(a.cfg.Flomo.UserAgent),
		flomo.WithLogger(slogx.Default()),
	))
	if err != nil {
		return nil, fmt.Errorf("init flomo client: %v", err)
	}

	return notes.New(notes.NewOptions(client))
}

func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	return run(ctx, cmd)
}

func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, errReported) {
		fmt.Fprintln(cmd.ErrOrStderr(), failureStyle.Render("✗ "+err.Error()))
	}

	return 1
}

func fatal(w *printer, msg string, err error) error {
	w.failure(fmt.Sprintf("%s: %v", msg, err))
	return errReported
}

func init() {
	cobra.EnableCommandSorting = false

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		disableColor()
	}
}
