// Package render displays planned operations without executing them.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
)

var (
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")

	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	targetStyle = lipgloss.NewStyle().Foreground(colorBlue)
	instrStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// Plan writes a human-readable rendition of every operation it is handed.
// It implements executor.Renderer.
type Plan struct {
	w     io.Writer
	color bool
}

// New creates a renderer writing to w. Color is enabled only when w is the
// process's terminal.
func New(w io.Writer) *Plan {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Plan{w: w, color: color}
}

// Shell implements executor.Renderer.
func (p *Plan) Shell(target executor.Target, cmd command.Command) {
	fmt.Fprintf(p.w, "%s %s\n", p.label("would run "+cmd.Label), p.target(target))
	for _, instruction := range cmd.Instructions {
		fmt.Fprintf(p.w, "    %s\n", p.instr(instruction))
	}
}

// Procedure implements executor.Renderer.
func (p *Plan) Procedure(name string, target executor.Target, params map[string]string) {
	fmt.Fprintf(p.w, "%s %s\n", p.label("would run procedure "+name), p.target(target))
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(p.w, "    %s\n", p.instr(fmt.Sprintf("%s=%s", k, params[k])))
	}
}

// Ping implements executor.Renderer.
func (p *Plan) Ping(target executor.Target) {
	fmt.Fprintf(p.w, "%s %s\n", p.label("would ping"), p.target(target))
}

func (p *Plan) label(s string) string {
	if !p.color {
		return s
	}
	return labelStyle.Render(s)
}

func (p *Plan) target(t executor.Target) string {
	s := "on " + t.String()
	if !p.color {
		return s
	}
	return targetStyle.Render(s)
}

func (p *Plan) instr(s string) string {
	if !p.color {
		return s
	}
	return instrStyle.Render(s)
}
