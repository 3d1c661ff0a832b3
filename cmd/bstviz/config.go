// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/bststeps"
	"github.com/cockroachdb/bststeps/internal/keyinput"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// configName is the config file name without extension.
	configName = ".bstviz"
	configType = "yaml"
	envPrefix  = "BSTVIZ"
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"speed":     "speed",
	"auto_play": "auto-play",
	"columns":   "columns",
	"color":     "color",
	"load":      "load",
}

// config is the CLI configuration. It layers, from lowest to highest
// precedence: the session defaults, the --options file, the config file, the
// BSTVIZ_* environment variables and the command line flags.
type config struct {
	speed       int
	autoPlay    *bool
	canvasWidth float64
	columns     int
	color       bool
	load        string
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "binding flag --%s", name)
			}
		}
	}
	if err := v.BindEnv("canvas_width"); err != nil {
		return nil, errors.Wrap(err, "binding canvas_width")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	var c config
	if v.IsSet("speed") {
		c.speed = v.GetInt("speed")
	}
	if v.IsSet("auto_play") {
		on := v.GetBool("auto_play")
		c.autoPlay = &on
	}
	c.canvasWidth = v.GetFloat64("canvas_width")
	c.columns = v.GetInt("columns")
	c.color = v.GetBool("color")
	c.load = v.GetString("load")
	if err := c.validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return &c, nil
}

func (c *config) validate() error {
	switch {
	case c.speed < 0:
		return errors.Errorf("speed %d must not be negative", c.speed)
	case c.columns < 0:
		return errors.Errorf("columns %d must not be negative", c.columns)
	case c.canvasWidth < 0:
		return errors.Errorf("canvas_width %g must not be negative", c.canvasWidth)
	}
	return nil
}

// sessionOptions returns the session options: the --options file, if any,
// overridden by the configured values.
func (c *config) sessionOptions() (*bststeps.Options, error) {
	opts := &bststeps.Options{}
	if optionsPath != "" {
		data, err := os.ReadFile(optionsPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading options")
		}
		hooks := &bststeps.ParseHooks{
			SkipUnknown: func(name, value string) bool {
				log.Printf("ignoring unknown option %s=%s", name, value)
				return true
			},
		}
		if err := opts.Parse(string(data), hooks); err != nil {
			return nil, err
		}
	}
	if c.speed != 0 {
		opts.Speed = c.speed
	}
	if c.autoPlay != nil {
		opts.DisableAutoPlay = !*c.autoPlay
	}
	if c.canvasWidth > 0 {
		opts.CanvasWidth = c.canvasWidth
	}
	if verbose {
		el := bststeps.MakeLoggingEventListener(bststeps.DefaultLogger{})
		opts.EventListener = &el
	}
	opts.EnsureDefaults()
	return opts, opts.Validate()
}

// loadKeys builds the initial tree from the --load file, if any.
func (c *config) loadKeys(s *bststeps.Session, out io.Writer) error {
	if c.load == "" {
		return nil
	}
	keys, skipped, err := keyinput.ReadFile(c.load)
	if err != nil {
		return err
	}
	s.LoadKeys(keys)
	fmt.Fprintf(out, "loaded %d keys from %s", len(keys), c.load)
	if skipped > 0 {
		fmt.Fprintf(out, " (%d tokens skipped)", skipped)
	}
	fmt.Fprintln(out)
	return nil
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "print the effective session options",
	Long: `
Print the session options resulting from the defaults, the --options file, the
config file, the environment and the flags. The output can be given back with
--options.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := c.sessionOptions()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), opts.String())
		return nil
	},
}
