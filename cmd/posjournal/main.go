package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"posjournal/internal/cli"
	"posjournal/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	logger := cli.SetupLogger(cfg)

	ctx, stop := cli.SignalContext(context.Background())
	ctx = log.NewContext(ctx, logger)

	session := cli.NewSession(func(ctx context.Context) (*cli.App, error) {
		return cli.OpenApp(ctx, cfg)
	})

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, session)

	flag.Parse()
	status := commander.Execute(ctx)

	if err := session.Close(); err != nil {
		logger.ErrorContext(ctx, "Failed to close journal", log.FieldError, err)
	}
	stop()
	os.Exit(int(status))
}
