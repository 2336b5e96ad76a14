package repl

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/design"

	"github.com/charmbracelet/bubbles/progress"
)

// printer writes the part of each snapshot that was not printed yet.
type printer struct {
	out      io.Writer
	bar      progress.Model
	printed  []terminal.Line
	caption  string
	hackStep int
	omega    bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:      out,
		bar:      progress.New(progress.WithWidth(30), progress.WithoutPercentage(), progress.WithSolidFill("#22C55E")),
		hackStep: -1,
	}
}

// render prints new history lines and closing captions, the omega overlay
// once and hack progress in tenths.
func (p *printer) render(snap terminal.Snapshot) {
	for _, line := range newLines(p.printed, snap.History) {
		fmt.Fprintln(p.out, formatLine(line))
	}
	p.printed = snap.History

	if snap.Caption != "" && snap.Caption != p.caption {
		fmt.Fprintln(p.out, design.CaptionStyle.Render(snap.Caption))
	}
	p.caption = snap.Caption

	if snap.Hacking {
		step := int(snap.HackProgress) / 10
		if step != p.hackStep {
			p.hackStep = step
			fmt.Fprintf(p.out, "%s %3d%%\n", p.bar.ViewAs(snap.HackProgress/100), int(snap.HackProgress))
		}
	} else {
		p.hackStep = -1
	}

	if snap.OmegaActive && !p.omega {
		fmt.Fprintln(p.out, design.OmegaStyle.Render("Ω  OMEGA PROTOCOL  Ω"))
	}
	p.omega = snap.OmegaActive
}

// newLines returns the lines of next that follow prev. When next no longer
// starts with prev the history was replaced and all of next is new.
func newLines(prev, next []terminal.Line) []terminal.Line {
	if len(next) >= len(prev) && slices.Equal(prev, next[:len(prev)]) {
		return next[len(prev):]
	}
	return next
}

func formatLine(line terminal.Line) string {
	if strings.TrimSpace(line.Text) == "" {
		return ""
	}
	return design.LineStyle(line.Kind).Render(line.Text)
}
