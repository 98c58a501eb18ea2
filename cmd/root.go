package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChrisRimondi/cvss-updater/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootCmdVerbose       bool
	rootCmdNoColor       bool
	rootCmdDirectory     string
	rootCmdConfig        string
	rootCmdRegisterFlags = func(cmd *cobra.Command) {
		cmd.PersistentFlags().BoolVarP(&rootCmdVerbose, "verbose", "v", false, "")
		cmd.PersistentFlags().BoolVar(&rootCmdNoColor, "no-color", false, "no-color")
		cmd.PersistentFlags().StringVar(&rootCmdDirectory, "dir", ".", "dir")
		cmd.PersistentFlags().StringVar(&rootCmdConfig, "config", "", "config file (default <dir>/"+internal.ConfigFileName+")")
	}
	rootCmd = &cobra.Command{
		Use:           "cvss-updater",
		Short:         "Re-score CVSS v3.1 base vectors for the environment they run in",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(internal.FileResolvePath(rootCmdDirectory, ".env"))
		},
	}
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(rescoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmdRegisterFlags(rootCmd)
}

// loadConfig reads the configuration file. Only a missing default file falls
// back to the default configuration.
func loadConfig() (*internal.Config, error) {
	dir := rootCmdDirectory
	file := internal.FileResolvePath(dir, internal.ConfigFileName)
	if rootCmdConfig != "" {
		file = internal.FileResolvePath(dir, rootCmdConfig)
	}
	fileBytes, err := os.ReadFile(file)
	var config *internal.Config
	if err != nil {
		if rootCmdConfig != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to initialize: %w", err)
		}
		c := internal.DefaultConfig()
		config = &c
	} else {
		config, err = internal.LoadConfig(fileBytes)
		if err != nil {
			return nil, fmt.Errorf("unable to load configuration: %w", err)
		}
	}
	config.CVERepoPath = internal.FileResolvePath(dir, config.CVERepoPath)
	config.OutputDir = internal.FileResolvePath(dir, config.OutputDir)
	return config, nil
}

func newStores(ctx context.Context, logger internal.Logger, config internal.Config) []internal.Store {
	stores := []internal.Store{internal.NewFileStore(config.OutputDir)}
	if config.Github != nil {
		stores = append(stores, internal.NewGithubStore(ctx, logger, *config.Github))
	}
	return stores
}
