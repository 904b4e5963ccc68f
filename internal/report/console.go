package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	warnFmt    = color.New(color.FgYellow).SprintfFunc()
	errorFmt   = color.New(color.FgRed).SprintfFunc()
	successFmt = color.New(color.FgGreen, color.Bold).SprintfFunc()
	headerFmt  = color.New(color.Bold).SprintfFunc()
)

// Console writes run progress as colored lines. Colors follow
// color.NoColor, which is off when stdout is not a terminal.
type Console struct {
	Out io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{Out: w}
}

func (c *Console) Infof(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintln(c.Out, warnFmt("Warning: "+format, args...))
}

func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.Out, errorFmt("Error: "+format, args...))
}

func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintln(c.Out, successFmt(format, args...))
}
