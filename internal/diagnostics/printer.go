package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// Printer renders diagnostics to a writer, with ANSI color when the writer
// is a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter builds a printer for out. Color is enabled automatically when
// out is a TTY; ForceColor overrides the detection.
func NewPrinter(out io.Writer) *Printer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{out: out, color: color}
}

// ForceColor turns color on or off regardless of TTY detection.
func (p *Printer) ForceColor(on bool) {
	p.color = on
}

// Print renders one diagnostic per line.
func (p *Printer) Print(diags []*Diagnostic) {
	for _, d := range diags {
		if p.color {
			fmt.Fprintf(p.out, "%s%serror[%s]%s %s\n", colorBold, colorRed, d.Code, colorReset, d.Error())
		} else {
			fmt.Fprintf(p.out, "error[%s] %s\n", d.Code, d.Error())
		}
	}
}
