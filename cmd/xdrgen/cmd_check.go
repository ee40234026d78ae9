package main

import (
	"context"

	"github.com/spf13/pflag"
)

type cmdCheck struct {
	commonFlags
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check FILES...",
		summary: "Parse and validate schemas without generating anything",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.commonFlags.register(flags)
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	cfg, logger, err := cmd.load()
	if err != nil {
		return report(err)
	}
	if _, err := compile(logger, cfg, argv); err != nil {
		return report(err)
	}
	return 0
}
