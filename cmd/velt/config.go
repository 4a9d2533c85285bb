package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/veltlang/velt/internal/config"
)

const (
	configFileName = ".velt"
	configFileType = "yaml"

	cfgKeyMaxDepth = "max_depth"
	cfgKeyColor    = "color"
)

// Global flag values.
var (
	flagMaxDepth int
	flagNoColor  bool
)

// loadConfig reads .velt.yaml from the working directory, if present.
// A missing config file is not an error.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyMaxDepth, config.DefaultMaxDepth)
	v.SetDefault(cfgKeyColor, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// resolveMaxDepth returns the depth budget following flag > config > default
// precedence.
func resolveMaxDepth(v *viper.Viper) int {
	if flagMaxDepth > 0 {
		return flagMaxDepth
	}
	return v.GetInt(cfgKeyMaxDepth)
}

// colorEnabled reports whether colored diagnostics are wanted at all;
// terminal detection still applies on top.
func colorEnabled(v *viper.Viper) bool {
	return !flagNoColor && v.GetBool(cfgKeyColor)
}
