package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bexxmodd/theleague/codegen/config"
	"github.com/bexxmodd/theleague/logging"
)

// loadConfig merges the command's flags, the environment and the optional config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	file, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, err
	}
	return config.Load(v, file)
}

func loggingContext(ctx context.Context, level string) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.NewTextLogger(os.Stderr, level)
	if err != nil {
		return nil, err
	}
	logging.DefaultLogger = logger
	return logging.Context(ctx, logger), nil
}
