// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	_ "net/http/pprof"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/align"
	"github.com/denishdholaria/bijmantra-sub010/circmap"
	"github.com/denishdholaria/bijmantra-sub010/window"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds defaults that can be supplied in a YAML file instead of
// on the command line.
type Config struct {
	Scoring     align.Scoring   `yaml:"scoring"`
	Render      window.Geometry `yaml:"render"`
	CircularMap MapConfig       `yaml:"circular_map"`
	// Workers limits concurrent per-record work; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

type MapConfig struct {
	Layout  circmap.Layout  `yaml:"layout"`
	Palette circmap.Palette `yaml:"palette"`
	Ticks   int             `yaml:"ticks"` // approximate number of backbone ticks
}

func DefaultConfig() Config {
	colors := make(map[string]string, len(circmap.DefaultPalette.Colors))
	for k, v := range circmap.DefaultPalette.Colors {
		colors[k] = v
	}
	return Config{
		Scoring: align.DefaultScoring,
		Render:  window.DefaultGeometry,
		CircularMap: MapConfig{
			Layout:  circmap.DefaultLayout,
			Palette: circmap.Palette{Colors: colors, Default: circmap.DefaultPalette.Default},
			Ticks:   12,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// palette entries from the file are merged into the defaults below,
	// after normalizing their case
	defaultColors := cfg.CircularMap.Palette.Colors
	cfg.CircularMap.Palette.Colors = nil
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range cfg.CircularMap.Palette.Colors {
		defaultColors[strings.ToLower(k)] = v
	}
	cfg.CircularMap.Palette.Colors = defaultColors
	return cfg, cfg.check()
}

func (cfg *Config) check() error {
	switch {
	case cfg.Render.BasesPerRow <= 0:
		return fmt.Errorf("render.bases_per_row must be positive, got %d", cfg.Render.BasesPerRow)
	case cfg.Render.RowHeight <= 0:
		return fmt.Errorf("render.row_height must be positive, got %v", cfg.Render.RowHeight)
	case cfg.Render.Overscan < 0:
		return fmt.Errorf("render.overscan must not be negative, got %d", cfg.Render.Overscan)
	case cfg.CircularMap.Layout.Radius <= 0:
		return fmt.Errorf("circular_map.layout.radius must be positive, got %v", cfg.CircularMap.Layout.Radius)
	case cfg.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return nil
}

// commonArgs are the flags shared by every subcommand.
type commonArgs struct {
	configFile string
	loglevel   string
	pprof      string

	flags *flag.FlagSet
}

func (ca *commonArgs) Flags(flags *flag.FlagSet) {
	ca.flags = flags
	flags.StringVar(&ca.configFile, "config", "", "YAML config `file` with default settings")
	flags.StringVar(&ca.loglevel, "loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	flags.StringVar(&ca.pprof, "pprof", "", "serve Go profile data at http://`[addr]:port`")
}

// Setup applies the log level, starts the profiling server if
// requested, and loads the config file. Call it after parsing flags.
func (ca *commonArgs) Setup() (Config, error) {
	lvl, err := log.ParseLevel(ca.loglevel)
	if err != nil {
		return Config{}, err
	}
	log.SetLevel(lvl)
	if ca.pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(ca.pprof, nil))
		}()
	}
	cfg, err := LoadConfig(ca.configFile)
	if err != nil {
		return cfg, err
	}
	log.WithField("config", ca.configFile).Debugf("settings %+v", cfg)
	return cfg, nil
}

// IsSet reports whether the named flag was given explicitly, so that it
// takes precedence over the config file.
func (ca *commonArgs) IsSet(name string) bool {
	set := false
	ca.flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
