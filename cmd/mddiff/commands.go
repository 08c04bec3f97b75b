package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	markdowndiff "github.com/AutoriteDeLaConcurrence/markdowndiff"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "mddiff").
		WithSynopsis("mddiff [opts] command [opts]").
		WithDescription("mddiff compares two versions of a document tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmt.Errorf("%w: expected a command (diff, view)", cli.ErrUsage)
		}).
		WithSubs(
			DiffCommand(cfg),
			ViewCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, F: markdowndiff.DefaultF}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "F",
		Description: "similarity threshold in [0,1], default 0.5",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkF()), "(ratio)"),
	})
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff [opts] old.yaml new.yaml").
		WithDescription("diff two document tree files; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffTrees(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [opts] [files]").
		WithDescription("load document tree files and render them back").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}
