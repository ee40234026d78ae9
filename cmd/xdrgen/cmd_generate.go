package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tokend/xdrgen/backend"
	"github.com/tokend/xdrgen/internal/log"
)

type cmdGenerate struct {
	commonFlags
	language  string
	output    string
	namespace string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [-l LANGUAGE] [-o DIR] [-n NAMESPACE] FILES...",
		summary: "Generate code for a target language (" + strings.Join(backend.Languages(), ", ") + ")",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	cmd.commonFlags.register(flags)
	flags.StringVarP(&cmd.language, "language", "l", "", "target language")
	flags.StringVarP(&cmd.output, "output", "o", "", "output directory")
	flags.StringVarP(&cmd.namespace, "namespace", "n", "", "prefix of generated file names")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	cfg, logger, err := cmd.load()
	if err != nil {
		return report(err)
	}
	if cmd.language != "" {
		cfg.Language = cmd.language
	}
	if cmd.output != "" {
		cfg.Output = cmd.output
	}
	if cmd.namespace != "" {
		cfg.Namespace = cmd.namespace
	}
	if cfg.Language == "" {
		log.Error("no language selected (use -l)")
		return 1
	}

	factory, err := backend.ForLanguage(cfg.Language)
	if err != nil {
		return report(err)
	}
	fe, err := compile(logger, cfg, argv)
	if err != nil {
		return report(err)
	}

	logger = logger.With("language", cfg.Language)
	out := backend.NewOutput(cfg.Output, fe.Paths()...)
	gen := factory(fe.Root(), out, backend.Options{
		Namespace: cfg.Namespace,
		Log:       logger,
		Config:    cfg,
	})
	genErr := gen.Generate()
	if err := errors.Join(genErr, out.Close()); err != nil {
		return report(err)
	}
	logger.Debug("generated", "output", cfg.Output)
	return 0
}
