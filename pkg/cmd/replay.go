package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/zenith-terminal/zenith/pkg/chart"
	"github.com/zenith-terminal/zenith/pkg/drawing"
	"github.com/zenith-terminal/zenith/pkg/replay"
	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/style"
)

func init() {
	ReplayCmd.Flags().String("output", "", "write the final frame to an .svg or .png file")
	ReplayCmd.Flags().Bool("commands", false, "list the script commands and exit")
	RootCmd.AddCommand(ReplayCmd)
}

var ReplayCmd = &cobra.Command{
	Use:   "replay SCRIPT [--output=chart.svg]",
	Short: "replay a scripted chart session and render its final frame",
	Args: func(cmd *cobra.Command, args []string) error {
		if listOnly, _ := cmd.Flags().GetBool("commands"); listOnly {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listOnly, _ := cmd.Flags().GetBool("commands"); listOnly {
		for _, name := range replay.CommandNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if script.ChartNode.IsZero() && configFile != "" {
		if _, statErr := os.Stat(configFile); statErr == nil {
			settings, err := chart.LoadSettings(configFile)
			if err != nil {
				return err
			}
			script.Chart = &settings
		}
	}

	session, err := replay.Setup(script, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := session.Run(cmd.Context(), script); err != nil {
		return err
	}
	log.Debugf("replayed %d steps in %s", len(script.Steps), time.Since(start))

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if output != "" {
		if err := writeFrame(session.Controller.Frame(), output); err != nil {
			return err
		}
		log.Infof("frame written to %s", output)
	}

	printSummary(out, script, session)
	return nil
}

func writeFrame(frame *scene.Frame, output string) error {
	var provider gochart.RendererProvider
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		provider = gochart.SVG
	case ".png":
		provider = gochart.PNG
	default:
		return fmt.Errorf("unsupported output format %q, expecting .svg or .png", ext)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := scene.Save(frame, provider, f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func printSummary(w io.Writer, script *replay.Script, session *replay.Session) {
	plural := pluralize.NewClient()
	c := session.Controller

	title := fmt.Sprintf("%s %s", script.Symbol, script.Interval)
	t := style.NewTable(script.Theme, strings.TrimSpace(title))
	t.AppendHeader(table.Row{"Drawing", "Count"})

	summary := session.Summary()
	total := 0
	for _, typ := range drawing.Types {
		if n := summary[typ]; n > 0 {
			t.AppendRow(table.Row{typ.Label(), n})
			total += n
		}
	}
	t.AppendFooter(table.Row{"Total", total})
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "%s, %s committed\n",
		plural.Pluralize("step", len(script.Steps), true),
		plural.Pluralize("drawing", session.Completed, true))

	if last, ok := c.Engine().Candles().Last(); ok {
		fmt.Fprintf(w, "last candle %s close %.2f %s\n",
			last.StartTime().UTC().Format("2006-01-02 15:04"), last.Close, style.CandleChange(last, 2))
	}
}
