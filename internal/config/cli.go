// Package config defines the command line surface. Every flag can also be set
// from the environment or from a JSON, YAML or TOML config file.
package config

import "github.com/s2ws/s2gen/internal/cmd"

type LogConfig struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"S2GEN_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"S2GEN_LOG_FILE"`
	RawFile string `help:"Dump every rendered artifact to this file" env:"S2GEN_LOG_RAW_FILE"`
	Format  string `help:"Console log format: auto, text or json" default:"auto" enum:"auto,text,json" env:"S2GEN_LOG_FORMAT"`
}

type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a JSON, YAML or TOML config file" env:"S2GEN_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate types, node modules and descriptors for every control type"`
	Check    cmd.Check         `cmd:"" help:"Verify that generated files match the document"`
	List     cmd.List          `cmd:"" help:"List messages grouped by control type"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
