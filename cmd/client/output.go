package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
)

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case formatText, formatJSON, formatYAML:
		return &printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render("✓ "+msg))
}

func (p *printer) failure(msg string) {
	fmt.Fprintln(p.w, failureStyle.Render("✗ "+msg))
}

func (p *printer) info(msg string) {
	fmt.Fprintln(p.w, infoStyle.Render(msg))
}

func (p *printer) link(label, url string) {
	fmt.Fprintln(p.w, infoStyle.Render(label+": ")+linkStyle.Render(url))
}

// payload dumps a reply body. Text mode prints indented json so error
// details from Flomo stay readable.
func (p *printer) payload(v any) {
	switch p.format {
	case formatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			fmt.Fprintf(p.w, "%v\n", v)
			return
		}
		p.w.Write(out)
	case formatJSON:
		out, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(p.w, "%v\n", v)
			return
		}
		fmt.Fprintln(p.w, string(out))
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(p.w, "%v\n", v)
			return
		}
		fmt.Fprintln(p.w, string(out))
	}
}

func (p *printer) structured() bool {
	return p.format != formatText
}
