package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"text/template"
)

// PlainFormatter writes one aligned line per clock.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// A custom template, if set, is executed once per entry.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes entries as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []Entry) error {
	if f.template != nil {
		for _, e := range entries {
			if err := f.template.Execute(w, e); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		if f.opts.ShowOffset && e.Offset != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Label, e.Time, "UTC"+e.Offset)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", e.Label, e.Time)
		}
	}
	return tw.Flush()
}
