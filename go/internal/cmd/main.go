package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(consoleWriter())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		var fatal *onboarding.FatalConnectivityError
		switch {
		case errors.As(err, &fatal):
			log.Error().Err(err).Msg("aborted: persistent store unreachable")
		case errors.Is(err, onboarding.ErrNoUsableData):
			log.Error().Err(err).Msg("aborted: nothing to onboard")
		default:
			log.Error().Err(err).Msg("command failed")
		}
		stop()
		os.Exit(1)
	}
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
}
