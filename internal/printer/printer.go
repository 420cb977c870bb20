// Package printer formats tasks as slips for an ESC/POS thermal
// receipt printer.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taskslip/taskslip/models"
)

// DefaultDevice is where USB thermal printers typically show up on
// Linux.
const DefaultDevice = "/dev/usb/lp0"

// slipWidth is the character width of a standard 58mm printer.
const slipWidth = 32

// Printer writes ESC/POS task slips to an io.Writer.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// OpenDevice opens the printer character device for writing. The
// caller must Close it.
func OpenDevice(path string) (*Printer, io.Closer, error) {
	if path == "" {
		path = DefaultDevice
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open printer device %s: %w", path, err)
	}
	return New(f), f, nil
}

// PrintTask renders one task as a slip: doubled title, priority and
// due-date lines, source footer, then feed and cut.
func (p *Printer) PrintTask(t models.Task) error {
	var buf []byte
	buf = append(buf, escInit...)
	buf = append(buf, escAlignMid...)
	buf = append(buf, escBoldOn...)
	buf = append(buf, "TASK\n"...)
	buf = append(buf, escBoldOff...)
	buf = append(buf, strings.Repeat("-", slipWidth)...)
	buf = append(buf, '\n')

	buf = append(buf, escAlignLeft...)
	buf = append(buf, escDoubleOn...)
	buf = append(buf, wrap(t.Name, slipWidth/2)...)
	buf = append(buf, '\n')
	buf = append(buf, escDoubleOff...)

	buf = append(buf, fmt.Sprintf("\nPriority: %s\n", t.Priority.Label())...)
	if t.DueDate != "" {
		buf = append(buf, fmt.Sprintf("Due:      %s\n", t.DueDate)...)
	}
	if t.Source != "" {
		buf = append(buf, fmt.Sprintf("From:     %s\n", wrap(t.Source, slipWidth))...)
	}

	buf = append(buf, strings.Repeat("-", slipWidth)...)
	buf = append(buf, '\n')
	buf = append(buf, escFeed...)
	buf = append(buf, escCutPartial...)

	if _, err := p.w.Write(buf); err != nil {
		return fmt.Errorf("write slip: %w", err)
	}
	return nil
}

// FormatSlip is the plain-text rendering of a slip, used by the CLI for
// previews when no device is attached.
func FormatSlip(t models.Task) string {
	var b strings.Builder
	sep := strings.Repeat("-", slipWidth)
	b.WriteString(sep + "\n")
	b.WriteString(wrap(t.Name, slipWidth) + "\n\n")
	b.WriteString("Priority: " + t.Priority.Label() + "\n")
	if t.DueDate != "" {
		b.WriteString("Due:      " + t.DueDate + "\n")
	}
	if t.Source != "" {
		b.WriteString("From:     " + t.Source + "\n")
	}
	b.WriteString(sep)
	return b.String()
}

// wrap breaks text into lines of at most width characters at word
// boundaries; single words longer than width are left intact.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var (
		b    strings.Builder
		line string
	)
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			b.WriteString(line + "\n")
			line = w
		}
	}
	b.WriteString(line)
	return b.String()
}
