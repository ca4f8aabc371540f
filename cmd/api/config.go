package main

import (
	"flag"
	"fmt"
	"io"

	"nthudata.org/api/internal/appconf"
)

// loadConfig layers configuration sources: defaults, the -config YAML file,
// NTHU_* environment variables, then any flags given explicitly.
func loadConfig(args []string, getenv func(string) string) (appconf.Config, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	defaults := appconf.Default()
	var (
		configPath string
		envFlag    string
		flagCfg    = defaults
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	fs.IntVar(&flagCfg.Port, "port", defaults.Port, "API server port")
	fs.StringVar(&envFlag, "env", defaults.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&flagCfg.DataBaseURL, "data-url", defaults.DataBaseURL, "Base URL of the NTHU data repository")
	fs.DurationVar(&flagCfg.DataRequestTimeout, "data-timeout", defaults.DataRequestTimeout, "Timeout for one upstream request")
	fs.DurationVar(&flagCfg.FileDetailsTTL, "details-ttl", defaults.FileDetailsTTL, "How long commit hashes are trusted before rechecking")
	fs.IntVar(&flagCfg.RateLimit, "rate-limit", defaults.RateLimit, "Requests per second per client, 0 disables limiting")
	fs.StringVar(&flagCfg.LogLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.BoolVar(&flagCfg.EnableDebugUI, "debug-ui", defaults.EnableDebugUI, "Serve the /debug/ page")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	cfg := defaults
	if configPath != "" {
		loaded, err := appconf.LoadFile(configPath, cfg)
		if err != nil {
			return appconf.Config{}, err
		}
		cfg = loaded
	}

	if err := appconf.ApplyEnv(&cfg, getenv); err != nil {
		return appconf.Config{}, err
	}

	var applyErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = flagCfg.Port
		case "env":
			cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
		case "data-url":
			cfg.DataBaseURL = flagCfg.DataBaseURL
		case "data-timeout":
			cfg.DataRequestTimeout = flagCfg.DataRequestTimeout
		case "details-ttl":
			cfg.FileDetailsTTL = flagCfg.FileDetailsTTL
		case "rate-limit":
			cfg.RateLimit = flagCfg.RateLimit
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "debug-ui":
			cfg.EnableDebugUI = flagCfg.EnableDebugUI
		case "config":
		default:
			applyErr = fmt.Errorf("unhandled flag %q", f.Name)
		}
	})
	if applyErr != nil {
		return appconf.Config{}, applyErr
	}

	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, err
	}
	return cfg, nil
}
