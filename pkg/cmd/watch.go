package cmd

import (
	"context"
	"fmt"
	"io"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zenith-terminal/zenith/pkg/cmd/cmdutil"
	"github.com/zenith-terminal/zenith/pkg/streamclient"
	"github.com/zenith-terminal/zenith/pkg/style"
	"github.com/zenith-terminal/zenith/pkg/types"
)

func init() {
	WatchCmd.Flags().String("url", "http://localhost:8080", "the dev server url")
	WatchCmd.Flags().String("symbol", "", "the symbol to stream, defaults to the server symbol")
	WatchCmd.Flags().String("interval", string(types.Interval1m), "the candle interval")
	WatchCmd.Flags().Int("count", 100, "the number of candles in the initial snapshot")
	WatchCmd.Flags().Int64("seed", 0, "the mock series seed, random when zero")
	WatchCmd.Flags().Int("candles", 0, "stop after this many new candles, zero streams until interrupted")
	WatchCmd.Flags().Bool("updates", false, "print updates of the forming candle")
	RootCmd.AddCommand(WatchCmd)
}

var WatchCmd = &cobra.Command{
	Use:   "watch [--url=http://localhost:8080] [--interval=1m]",
	Short: "print the candle stream of a dev server",
	Args:  cobra.NoArgs,
	RunE:  watch,
}

func watch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	baseURL, _ := flags.GetString("url")
	symbol, _ := flags.GetString("symbol")
	intervalStr, _ := flags.GetString("interval")
	count, _ := flags.GetInt("count")
	seed, _ := flags.GetInt64("seed")
	limit, _ := flags.GetInt("candles")
	showUpdates, _ := flags.GetBool("updates")

	interval, err := types.ParseInterval(intervalStr)
	if err != nil {
		return err
	}

	client, err := streamclient.New(baseURL, streamclient.Query{
		Symbol:   symbol,
		Interval: interval,
		Count:    count,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	client.OnConnect(func(session string) {
		log.Infof("connected to %s, session %s", client.URL, session)
	})
	client.OnSnapshot(func(candles types.CandleSlice) {
		fmt.Fprintf(out, "snapshot: %d candles\n", len(candles))
		if last, ok := candles.Last(); ok {
			printCandle(out, last)
		}
	})

	received := 0
	client.OnCandle(func(candle types.Candle) {
		printCandle(out, candle)
		received++
		if limit > 0 && received >= limit {
			cancel()
		}
	})
	if showUpdates {
		client.OnUpdate(func(candle types.Candle) {
			printCandle(out, candle)
		})
	}

	go func() {
		if sig := cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM); sig != nil {
			cancel()
		}
	}()

	err = client.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printCandle(w io.Writer, c types.Candle) {
	fmt.Fprintf(w, "%s O %.2f H %.2f L %.2f C %.2f %s\n",
		c.StartTime().UTC().Format("2006-01-02 15:04"),
		c.Open, c.High, c.Low, c.Close, style.CandleChange(c, 2))
}
