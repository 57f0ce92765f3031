package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/flomo-relay/internal/relayclient"
)

func newTestCmd(a *app) *cobra.Command {
	var wait uint

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the relay is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.direct {
				return a.testDirect()
			}

			c, err := a.relay(wait)
			if err != nil {
				return err
			}

			st, err := c.Ping(cmd.Context())
			if err != nil {
				var statusErr *relayclient.StatusError
				if errors.As(err, &statusErr) {
					a.printer.failure("Server error: " + statusErr.Status)
					printBody(a.printer, statusErr)
					return errReported
				}

				return fatal(a.printer, "Cannot reach the relay", err)
			}

			if a.printer.structured() {
				a.printer.payload(st)
				return nil
			}

			a.printer.success("Server status: " + st.Message)
			a.printer.info("Flomo API URL: " + st.FlomoAPIURL)

			return nil
		},
	}

	cmd.Flags().UintVar(&wait, "wait", 1, "number of attempts, one second apart, before giving up")

	return cmd
}

func (a *app) testDirect() error {
	endpoint, err := a.cfg.Endpoint()
	if err != nil {
		return fatal(a.printer, "Invalid configuration", err)
	}

	a.printer.success("Configuration is valid")
	a.printer.info("Flomo API URL: " + endpoint.Redacted(30))

	return nil
}

func printBody(p *printer, statusErr *relayclient.StatusError) {
	if payload := statusErr.Payload(); payload != nil {
		p.payload(payload)
		return
	}

	if len(statusErr.Body) > 0 {
		p.info(string(statusErr.Body))
	}
}
