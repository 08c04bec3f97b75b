package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Sig    bool
	Match  bool
	Align  bool
	Script bool
}

var d *debug

func init() {
	d = &debug{}
	d.Sig = boolEnv("MDDIFF_DEBUG_SIG")
	d.Match = boolEnv("MDDIFF_DEBUG_MATCH")
	d.Align = boolEnv("MDDIFF_DEBUG_ALIGN")
	d.Script = boolEnv("MDDIFF_DEBUG_SCRIPT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Sig() bool {
	return d.Sig
}
func Match() bool {
	return d.Match
}
func Align() bool {
	return d.Align
}
func Script() bool {
	return d.Script
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
