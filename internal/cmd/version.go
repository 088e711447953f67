//go:build !tinygo

package cmd

import (
	"fmt"
	"io"
	"os"

	"padcalc/internal/buildinfo"
)

// Version prints build information.
type Version struct {
	out io.Writer
}

// Run is called by Kong when the version command is executed.
func (v *Version) Run() error {
	out := v.out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, "padcalc", buildinfo.Long())
	return err
}
