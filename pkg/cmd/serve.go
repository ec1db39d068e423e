package cmd

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/zenith-terminal/zenith/pkg/cmd/cmdutil"
	"github.com/zenith-terminal/zenith/pkg/mockfeed"
	"github.com/zenith-terminal/zenith/pkg/server"
)

func init() {
	ServeCmd.Flags().String("bind", server.DefaultBind, "the address the dev server listens on")
	ServeCmd.Flags().String("symbol", server.DefaultSymbol, "the default symbol of generated series")
	ServeCmd.Flags().String("stream-rate", server.DefaultStreamRate, "stream update rate, e.g. 1+2/1s")
	ServeCmd.Flags().Int("updates-per-candle", mockfeed.DefaultUpdatesPerCandle, "stream updates before a new candle opens")
	ServeCmd.Flags().StringSlice("allow-origin", nil, "allowed CORS origins")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:   "serve [--bind=:8080] [--stream-rate=1+2/1s]",
	Short: "serve mock candles, the candle stream and metrics",
	RunE:  serve,
}

// serverConfig reads the server section of the config file; flags given on
// the command line take precedence.
func serverConfig(cmd *cobra.Command) (server.Config, error) {
	var config server.Config
	if err := viper.UnmarshalKey("server", &config); err != nil {
		return config, fmt.Errorf("invalid server config: %w", err)
	}

	flags := cmd.Flags()
	override := func(name string, value *string) error {
		if !flags.Changed(name) && *value != "" {
			return nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*value = v
		return nil
	}

	if err := override("bind", &config.Bind); err != nil {
		return config, err
	}
	if err := override("symbol", &config.Symbol); err != nil {
		return config, err
	}
	if err := override("stream-rate", &config.StreamRate); err != nil {
		return config, err
	}

	if flags.Changed("updates-per-candle") || config.UpdatesPerCandle == 0 {
		n, err := flags.GetInt("updates-per-candle")
		if err != nil {
			return config, err
		}
		config.UpdatesPerCandle = n
	}

	if flags.Changed("allow-origin") {
		origins, err := flags.GetStringSlice("allow-origin")
		if err != nil {
			return config, err
		}
		config.AllowOrigins = origins
	}

	return config, nil
}

func serve(cmd *cobra.Command, args []string) error {
	config, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := server.New(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	g.Go(func() error {
		if sig := cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM); sig != nil {
			log.Infof("shutting down the dev server...")
		}
		cancel()
		return nil
	})

	baseURL := localURL(srv.Config.Bind)
	go server.PingUntil(ctx, baseURL, func() {
		log.Infof("dev server is ready at %s", baseURL)
	})

	return g.Wait()
}

// localURL turns a listen address such as ":8080" into a loopback url.
func localURL(bind string) string {
	if strings.HasPrefix(bind, ":") {
		return "http://localhost" + bind
	}
	return "http://" + bind
}
