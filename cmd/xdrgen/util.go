package main

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/tokend/xdrgen"
	"github.com/tokend/xdrgen/backend"
	"github.com/tokend/xdrgen/internal/config"
	"github.com/tokend/xdrgen/internal/log"
)

// commonFlags are accepted by every command reading schemas.
type commonFlags struct {
	configPath string
	verbose    bool
}

func (c *commonFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&c.configPath, "config", "c", "", "YAML or JSON configuration file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log progress")
}

func (c *commonFlags) load() (*config.Config, log.Logger, error) {
	cfg := config.New()
	if c.configPath != "" {
		if err := cfg.LoadFile(c.configPath); err != nil {
			return nil, nil, err
		}
	}
	if c.verbose {
		cfg.Verbose = true
	}
	log.Root = &log.Default{Debugging: cfg.Verbose}
	return cfg, log.New(), nil
}

// compile parses and validates the inputs, falling back to the inputs
// listed in the configuration.
func compile(logger log.Logger, cfg *config.Config, argv []string) (xdrgen.Frontend, error) {
	inputs := argv
	if len(inputs) == 0 {
		inputs = cfg.Inputs
	}
	fe, err := xdrgen.New(inputs...)
	if err != nil {
		return nil, err
	}
	logger.Debug("compiling", "inputs", len(inputs))
	if err := fe.Run(); err != nil {
		return nil, err
	}
	logger.Debug("validated", "namespaces", len(fe.Root().Namespaces), "definitions", len(fe.Root().Definitions))
	return fe, nil
}

// report prints err and returns the exit status for it: 2 when the target
// cannot express the schema, 1 for anything else.
func report(err error) int {
	log.Error(err.Error())
	var unsupported *backend.UnsupportedConstructError
	if errors.As(err, &unsupported) {
		return 2
	}
	return 1
}
