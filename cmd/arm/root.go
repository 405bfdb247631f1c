package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/p-jackson/arm/internal/forest"
	"github.com/p-jackson/arm/internal/ui"
)

const envPrefix = "ARM"

type rootConfig struct {
	ConfigFile string
	LogLevel   string
	NoColor    bool
}

func newRootCmd() *cobra.Command {
	cfg := rootConfig{}
	cmd := &cobra.Command{
		Use:           "arm",
		Short:         "Manage a forest of related version-controlled repositories",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), viper.GetString("log_level"), viper.GetBool("no_color"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", false, "Disable coloured output")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("no_color", cmd.PersistentFlags().Lookup("no-color"))

	cmd.AddCommand(
		newCloneCmd(),
		newInitCmd(),
		newInstallCmd(),
		newStatusCmd(),
		newOutgoingCmd(),
		newRootPathCmd(),
		newMakeBranchCmd(),
		newSwitchCmd(),
		newListCmd(),
		newDoctorCmd(),
	)
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to read config file %s", configFile)).
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/arm")
	// The config file is optional.
	_ = viper.ReadInConfig()
	return nil
}

func setupLogging(w io.Writer, level string, noColor bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: noColor})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// stylesFor colours output only for a terminal and when not disabled.
func stylesFor(w io.Writer) ui.Styles {
	f, ok := w.(*os.File)
	return ui.NewStyles(ok && ui.IsTerminal(f) && !viper.GetBool("no_color"))
}

func newEnv(cmd *cobra.Command, base string) forest.Env {
	out := cmd.OutOrStdout()
	return forest.NewEnv(out, stylesFor(out), base)
}

// openForest locates the root from the working directory, which becomes the
// root, and loads the forest.
func openForest(manifestName string) (*forest.Forest, error) {
	root, err := forest.LocateRoot()
	if err != nil {
		return nil, err
	}
	return forest.Load(root, manifestName)
}

// errorMessage is the builder message followed by its cause, unless the
// message already says it.
func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) || strings.TrimSpace(builder.Msg) == "" {
		return err.Error()
	}
	if builder.Cause == nil {
		return builder.Msg
	}
	cause := builder.Cause.Error()
	if cause == "" || strings.Contains(builder.Msg, cause) {
		return builder.Msg
	}
	return builder.Msg + ": " + cause
}

func reportError(w *os.File, err error) {
	log.Debug().Err(err).Msg("fatal")
	styles := ui.NewStyles(ui.IsTerminal(w) && !viper.GetBool("no_color"))
	_, _ = fmt.Fprintln(w, styles.Error.Render("Error: "+errorMessage(err)))
}
