package cli

import (
	"slices"
	"strings"

	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*levelValue)(nil)

// levelValue is a pflag.Value restricted to the rollup levels.
type levelValue struct {
	level rollup.Level
}

func (v *levelValue) String() string { return string(v.level) }

func (v *levelValue) Set(s string) error {
	l, err := rollup.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	v.level = l
	return nil
}

func (v *levelValue) Type() string { return "level" }

func levelNames() []string {
	out := make([]string, len(rollup.Levels))
	for i, l := range rollup.Levels {
		out[i] = string(l)
	}
	return out
}

func sortedStrings(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
