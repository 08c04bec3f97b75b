package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	markdowndiff "github.com/AutoriteDeLaConcurrence/markdowndiff"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/treeio"
)

func diffTrees(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	oldTree, err := loadTree(cc, args[0], cfg.Ignore)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[0], err)
	}
	newTree, err := loadTree(cc, args[1], cfg.Ignore)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[1], err)
	}
	res, err := markdowndiff.Diff(oldTree, newTree,
		markdowndiff.DiffF(cfg.F),
		markdowndiff.DiffFastMatch(cfg.Fast))
	if err != nil {
		return err
	}
	p := &opPrinter{
		Color:   cfg.useColor(cc.Out),
		Unified: cfg.Unified,
		All:     cfg.All,
	}
	if err := p.Format(cc.Out, res); err != nil {
		return err
	}
	if res.Changed() {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func loadTree(cc *cli.Context, path, ignore string) (*ir.Tree, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cc.In)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var opts []treeio.Option
	if ignore != "" {
		opts = append(opts, treeio.WithIgnore(ignore))
	}
	return treeio.Load(data, opts...)
}
