// Filter or split a MediaWiki XML dump.
package main

import (
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/swlocal/go-wikidump"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "wikidump",
		Usage: "filter or split MediaWiki XML dumps in one streaming pass",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file",
				EnvVars: []string{"WIKIDUMP_CONFIG"},
			},
			&cli.Int64Flag{
				Name:    "report-every",
				Usage:   "log progress every this many pages (0 disables)",
				Value:   defaultReportEvery,
				EnvVars: []string{"WIKIDUMP_REPORT_EVERY"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors and the final summary",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every skipped page",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "filter",
				Usage:     "drop pages whose latest revision has a blocked content model",
				ArgsUsage: "input.xml[.bz2] output.xml|-",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "block",
						Aliases: []string{"b"},
						Usage:   "content model to drop, repeatable (default interactivemap, GeoJSON)",
						EnvVars: []string{"WIKIDUMP_BLOCKLIST"},
					},
				},
				Action: filterAction,
			},
			{
				Name:      "split",
				Usage:     "deal pages round-robin into part1.xml .. partN.xml",
				ArgsUsage: "input.xml[.bz2] outdir [parts]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "parts",
						Aliases: []string{"n"},
						Usage:   "number of output files",
						EnvVars: []string{"WIKIDUMP_PARTS"},
					},
				},
				Action: splitAction,
			},
		},
	}
}

func usageError(c *cli.Context) error {
	return &wikidump.ConfigError{Msg: "usage: " + c.App.Name + " " +
		c.Command.Name + " " + c.Command.ArgsUsage}
}

// openInput opens the dump and reads up to its root element.  Nothing
// has been written when this fails.
func openInput(fn string) (io.Closer, wikidump.Parser, error) {
	r, err := wikidump.OpenDump(fn)
	if err != nil {
		return nil, nil, &wikidump.ConfigError{Msg: err.Error()}
	}
	p, err := wikidump.NewParser(r)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return r, p, nil
}

// stdoutSink hides any Close method of the app's writer, so closing the
// output document leaves stdout open.
type stdoutSink struct {
	io.Writer
}

func filterAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return usageError(c)
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	r, p, err := openInput(in)
	if err != nil {
		return err
	}
	defer r.Close()

	var w *wikidump.Writer
	if out == "-" {
		w = wikidump.NewWriter(stdoutSink{c.App.Writer}, "stdout")
	} else {
		w, err = wikidump.CreateWriter(out)
		if err != nil {
			return err
		}
	}

	pp := newProgress(p, s.reportEvery())
	start := time.Now()
	counters, err := wikidump.FilterFunc(pp, w, s.blocklist(),
		func(page *wikidump.Page, d wikidump.Decision) {
			if s.Verbose && d.Dropped() {
				log.Printf("Skipping %q (id %v, model %v)", page.Title, page.ID, d.Model)
			}
		})
	logSiteInfo(s, p)
	writeFilterSummary(c.App.ErrWriter, counters, time.Since(start))
	return err
}

func splitAction(c *cli.Context) error {
	if c.NArg() < 2 || c.NArg() > 3 {
		return usageError(c)
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	if c.NArg() == 3 {
		n, err := strconv.Atoi(c.Args().Get(2))
		if err != nil {
			return &wikidump.ConfigError{Msg: "parts must be a positive integer, got " +
				strconv.Quote(c.Args().Get(2))}
		}
		s.Parts = n
	}
	if s.Parts <= 0 {
		return &wikidump.ConfigError{Msg: "parts must be a positive integer, got " +
			strconv.Itoa(s.Parts)}
	}
	in, dir := c.Args().Get(0), c.Args().Get(1)

	r, p, err := openInput(in)
	if err != nil {
		return err
	}
	defer r.Close()

	outs, err := wikidump.CreateParts(dir, s.Parts)
	if err != nil {
		return err
	}

	start := time.Now()
	counters, err := wikidump.Split(newProgress(p, s.reportEvery()), outs)
	logSiteInfo(s, p)
	writeSplitSummary(c.App.ErrWriter, dir, counters, time.Since(start))
	return err
}

func logSiteInfo(s settings, p wikidump.Parser) {
	if s.Quiet {
		return
	}
	si := p.SiteInfo()
	if si.SiteName != "" {
		log.Printf("Got site info:  %v (%v, %v)", si.SiteName, si.DBName, si.Generator)
	}
}

func exitCode(err error) int {
	var ce *wikidump.ConfigError
	if errors.As(err, &ce) {
		return 2
	}
	return 1
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(exitCode(err))
	}
}
