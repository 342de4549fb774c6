package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/confviz/internal/diff"
)

// diffFormatValue is a pflag.Value accepting only known diff formats.
type diffFormatValue struct {
	format diff.Format
}

var _ pflag.Value = (*diffFormatValue)(nil)

func newDiffFormatValue(def diff.Format) *diffFormatValue {
	return &diffFormatValue{format: def}
}

func (v *diffFormatValue) String() string { return string(v.format) }

func (v *diffFormatValue) Set(s string) error {
	for _, f := range diff.Formats {
		if string(f) == s {
			v.format = f
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", formatList())
}

func (v *diffFormatValue) Type() string { return "format" }
