package task

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/includer/render"
)

// Document is the outcome of processing one [Target].
type Document struct {
	Target

	Bytes      int
	Elapsed    time.Duration
	Unresolved []Unresolved
	Err        error
}

// Report summarizes a run.
type Report struct {
	Documents []Document
	Stats     render.Stats
	Elapsed   time.Duration
}

// Failed returns the number of documents that failed.
func (r *Report) Failed() int {
	n := 0

	for _, d := range r.Documents {
		if d.Err != nil {
			n++
		}
	}

	return n
}

// Render writes a table of the documents of r followed by a summary line.
// Colors are used only if w is a terminal.
func (r *Report) Render(w io.Writer) error {
	re := lipgloss.NewRenderer(w)

	var (
		header = re.NewStyle().Bold(true).Padding(0, 1)
		cell   = re.NewStyle().Padding(0, 1)
		failed = cell.Foreground(lipgloss.Color("1"))
		warned = cell.Foreground(lipgloss.Color("3"))
		muted  = re.NewStyle().Foreground(lipgloss.Color("8"))
	)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(muted).
		Headers("SOURCE", "DEST", "BYTES", "TIME", "STATUS")

	for _, d := range r.Documents {
		t.Row(d.Src, destName(d.Dest), strconv.Itoa(d.Bytes),
			d.Elapsed.Round(time.Microsecond).String(), status(d))
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}

		switch d := r.Documents[row]; {
		case d.Err != nil:
			return failed
		case len(d.Unresolved) > 0:
			return warned
		default:
			return cell
		}
	})

	summary := fmt.Sprintf(
		"%d document(s), %d include(s), %d warning(s), %d failed in %s",
		len(r.Documents), r.Stats.Includes, r.Stats.Warnings, r.Failed(),
		r.Elapsed.Round(time.Millisecond),
	)

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		t.Render(), muted.Render(summary)))

	return err
}

func destName(dest string) string {
	if dest == "" {
		return "-"
	}

	return dest
}

func status(d Document) string {
	switch {
	case d.Err != nil:
		return "failed"
	case len(d.Unresolved) > 0:
		return strconv.Itoa(len(d.Unresolved)) + " unresolved"
	default:
		return "ok"
	}
}
