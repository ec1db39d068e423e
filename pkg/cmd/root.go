package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zenith-terminal/zenith/pkg/cmd/cmdutil"
)

var RootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "zenith chart tools",
	Long:  "development server and scripted session replay for the zenith candlestick chart",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotenv(viper.GetString("dotenv")); err != nil {
			return err
		}

		if err := loadConfig(viper.GetString("config")); err != nil {
			return err
		}

		configureLogger(viper.GetBool("debug"), os.Getenv("ZENITH_ENV"), viper.GetString("log-file"))
		return nil
	},
}

func init() {
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

func loadDotenv(dotenvFile string) error {
	if dotenvFile == "" {
		return nil
	}

	if _, err := os.Stat(dotenvFile); err != nil {
		return nil
	}

	if err := godotenv.Load(dotenvFile); err != nil {
		log.WithError(err).Error("error loading dotenv file")
		return err
	}

	return nil
}

// loadConfig reads the config file into viper when it exists; the chart and
// server sections are decoded by the commands that need them.
func loadConfig(configFile string) error {
	if configFile == "" {
		return nil
	}

	if _, err := os.Stat(configFile); err != nil {
		return nil
	}

	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Errorf("failed to load config file %s", configFile)
		return err
	}

	return nil
}

func configureLogger(debug bool, environment, logFile string) {
	log.SetFormatter(&prefixed.TextFormatter{})

	logger := log.StandardLogger()
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	switch environment {
	case "production", "prod":
		writer := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     7, // days
			Compress:   true,
		}

		logger.AddHook(
			lfshook.NewHook(
				lfshook.WriterMap{
					log.DebugLevel: writer,
					log.InfoLevel:  writer,
					log.WarnLevel:  writer,
					log.ErrorLevel: writer,
					log.FatalLevel: writer,
				},
				&log.JSONFormatter{},
			),
		)
	}
}

func Execute() {
	viper.SetEnvPrefix("zenith")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, e.g. ZENITH_DEBUG=1
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
