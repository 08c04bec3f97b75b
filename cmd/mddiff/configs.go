package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='render with color'"`

	Main *cli.Command
}

// useColor follows the -color flag when given, otherwise colors only
// terminals.
func (cfg *MainConfig) useColor(w any) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			// explicitly set, and not true
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig

	Fast    bool   `cli:"name=fast desc='limit similarity matching to matched-ancestor subtrees'"`
	Ignore  string `cli:"name=ignore desc='drop subtrees matching this expr predicate on load'"`
	Unified bool   `cli:"name=u desc='render multi-line text deltas as unified diffs'"`
	All     bool   `cli:"name=a desc='also print unchanged (align) nodes'"`

	F float64

	Diff *cli.Command
}

func (cfg *DiffConfig) mkF() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: -F wants a float in [0,1]: %v", cli.ErrUsage, err)
		}
		cfg.F = f
		return f, nil
	}
}

type ViewConfig struct {
	*MainConfig

	Ignore string `cli:"name=ignore desc='drop subtrees matching this expr predicate on load'"`

	View *cli.Command
}
