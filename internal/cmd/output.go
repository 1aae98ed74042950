package cmd

import (
	"io"

	"github.com/muesli/termenv"
)

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
