package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBright = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

var ErrInputClosed = errors.New("input closed")

// Console is the line-oriented terminal the menus talk through.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, color: color}
}

// NewTerminal binds to stdin/stdout; colors are enabled only on a real terminal.
func NewTerminal() *Console {
	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewConsole(os.Stdin, colorable.NewColorableStdout(), color)
}

func (c *Console) paint(code, text string) string {
	if !c.color || code == "" {
		return text
	}
	return code + text + ansiReset
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Header(text string) {
	fmt.Fprintln(c.out, c.paint(ansiBright+ansiCyan, text))
}

func (c *Console) Section(text string) {
	fmt.Fprintln(c.out, c.paint(ansiBright+ansiGreen, "\n=== "+text+" ==="))
}

func (c *Console) Info(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(ansiCyan, fmt.Sprintf(format, a...)))
}

func (c *Console) Success(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(ansiGreen, fmt.Sprintf(format, a...)))
}

func (c *Console) Warn(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(ansiYellow, fmt.Sprintf(format, a...)))
}

func (c *Console) Error(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(ansiRed, fmt.Sprintf(format, a...)))
}

// Status prints "label: ON" with the state colored green or red.
func (c *Console) Status(label string, on bool) {
	if on {
		fmt.Fprintf(c.out, "%s: %s\n", label, c.paint(ansiGreen, "ON"))
		return
	}
	fmt.Fprintf(c.out, "%s: %s\n", label, c.paint(ansiRed, "OFF"))
}

// Writer exposes the raw output, for progress bars.
func (c *Console) Writer() io.Writer {
	return c.out
}

// ReadLine prints prompt and returns the trimmed line. A final line without
// newline is returned normally; ErrInputClosed only when nothing was read.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, c.paint(ansiYellow, prompt))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskFloat prompts for a number in [min, max]. Blank input, parse errors and
// out-of-range values all yield def.
func (c *Console) AskFloat(prompt string, def, min, max float64) (float64, error) {
	line, err := c.ReadLine(fmt.Sprintf("%s [default=%g]: ", prompt, def))
	if err != nil {
		return def, err
	}
	if line == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.Error("Invalid number, using default: %g", def)
		return def, nil
	}
	if !(v >= min && v <= max) {
		c.Error("Value %g outside %g-%g, using default: %g", v, min, max, def)
		return def, nil
	}
	return v, nil
}
