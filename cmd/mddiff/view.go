package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/treeio"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		t, err := loadTree(cc, arg, cfg.Ignore)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		d, err := treeio.Marshal(t)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}
