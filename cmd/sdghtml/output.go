package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/dpotapov/go-sdg/sdghtml"
)

const defaultWidth = 80

const (
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// printer writes diagnostics and errors, wrapped to the width of the output.
type printer struct {
	w     io.Writer
	color bool
	width int
}

func (p *printer) diagnostic(file string, d sdghtml.Diagnostic) {
	head := fmt.Sprintf("%s:%d:", file, d.Line)
	p.report(head, d.Message, d.Excerpt)
}

func (p *printer) error(err error) {
	var (
		serr    *sdghtml.SyntaxError
		excerpt string
	)
	if errors.As(err, &serr) {
		excerpt = serr.Excerpt()
	}
	p.report("", err.Error(), excerpt)
}

func (p *printer) report(head, msg, excerpt string) {
	if p.color {
		if head != "" {
			head = ansiBold + head + ansiReset
		}
		msg = ansiRed + msg + ansiReset
	}
	line := msg
	if head != "" {
		line = head + " " + msg
	}
	fmt.Fprintln(p.w, wordwrap.String(line, p.width))
	if excerpt != "" {
		fmt.Fprintln(p.w, indent.String(excerpt, 4))
	}
}

func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(w) && os.Getenv("NO_COLOR") == "", nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if tw, err := strconv.Atoi(value); err == nil && tw > 0 {
			return tw
		}
	}
	return defaultWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
