package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/akeren/consent-intake/internal/wizard"
	"github.com/akeren/consent-intake/pkg/constants"
	"github.com/akeren/consent-intake/pkg/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func register(args []string) error {
	defaultEndpoint := utils.GetEnvTrimmedOrDefault("SUBMIT_ENDPOINT", "http://localhost:"+constants.DefaultAppPort+"/api/submit")

	var endpoint string
	var timeout time.Duration

	flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
	flagSet.StringVarP(&endpoint, "endpoint", "e", defaultEndpoint, "registration endpoint URL")
	flagSet.DurationVar(&timeout, "timeout", wizard.DefaultSubmitTimeout, "timeout for the submit request")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	submitter := wizard.NewHTTPSubmitter(endpoint, &http.Client{Timeout: timeout})
	form := wizard.NewForm(submitter)

	final, err := tea.NewProgram(wizard.NewModel(ctx, form), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}

	if m, ok := final.(wizard.Model); ok && m.Done() && form.Status() == wizard.StatusFailed {
		return errors.New(wizard.StatusFailed)
	}

	return nil
}
