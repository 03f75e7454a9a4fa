package main

import (
	"errors"
	"io"
	"os"

	"github.com/swlocal/go-wikidump"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const defaultReportEvery = 10000

// fileConfig is the YAML config file.  Unset keys leave the built-in
// defaults alone.
type fileConfig struct {
	Blocklist   []string `yaml:"blocklist"`
	Parts       int      `yaml:"parts"`
	ReportEvery *int64   `yaml:"report_every"`
}

func loadConfigFile(fn string) (fileConfig, error) {
	var fc fileConfig
	f, err := os.Open(fn)
	if err != nil {
		return fc, &wikidump.ConfigError{Msg: err.Error()}
	}
	defer f.Close()

	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, &wikidump.ConfigError{Msg: fn + ": " + err.Error()}
	}
	return fc, nil
}

type settings struct {
	Blocklist   []string
	Parts       int
	ReportEvery int64
	Quiet       bool
	Verbose     bool
}

// loadSettings resolves flags and environment over the config file
// over the defaults.
func loadSettings(c *cli.Context) (settings, error) {
	s := settings{
		Blocklist:   wikidump.DefaultBlocklist,
		ReportEvery: defaultReportEvery,
		Quiet:       c.Bool("quiet"),
		Verbose:     c.Bool("verbose"),
	}

	if fn := c.String("config"); fn != "" {
		fc, err := loadConfigFile(fn)
		if err != nil {
			return s, err
		}
		if fc.Blocklist != nil {
			s.Blocklist = fc.Blocklist
		}
		if fc.Parts != 0 {
			s.Parts = fc.Parts
		}
		if fc.ReportEvery != nil {
			s.ReportEvery = *fc.ReportEvery
		}
	}

	if c.IsSet("block") {
		s.Blocklist = c.StringSlice("block")
	}
	if c.IsSet("parts") {
		s.Parts = c.Int("parts")
	}
	if c.IsSet("report-every") {
		s.ReportEvery = c.Int64("report-every")
	}
	return s, nil
}

func (s settings) blocklist() wikidump.Blocklist {
	return wikidump.NewBlocklist(s.Blocklist...)
}

func (s settings) reportEvery() int64 {
	if s.Quiet {
		return 0
	}
	return s.ReportEvery
}
