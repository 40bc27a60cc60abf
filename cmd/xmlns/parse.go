package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacoelho/xmlns"
)

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse documents and print their resolved events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, files []string) error {
			root, err := a.rootConfig()
			if err != nil {
				return err
			}
			pal := a.palette()
			failed := 0
			for _, file := range files {
				if err := a.parseFile(root, file, pal); err != nil {
					failed++
					fmt.Fprintf(a.stderr, "%s %s: %v\n", pal.fail.Sprint("FAIL"), file, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(files))
			}
			return nil
		},
	}
}

func (a *app) parseFile(root *xmlns.Config, file string, pal palette) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(a.stdout, "%s\n", pal.label.Sprint(file)); err != nil {
		return err
	}
	p := root.CreateParser()
	return p.Parse(f, &eventPrinter{w: a.stdout, pal: pal})
}

// eventPrinter writes one indented line per event.
type eventPrinter struct {
	w     io.Writer
	pal   palette
	depth int
}

func (e *eventPrinter) qualified(n xmlns.Name) string {
	if n.URI == "" {
		return e.pal.name.Sprint(n.Local)
	}
	return e.pal.uri.Sprintf("{%s}", n.URI) + e.pal.name.Sprint(n.Local)
}

func (e *eventPrinter) line(format string, args ...any) error {
	_, err := fmt.Fprintf(e.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", e.depth+1)}, args...)...)
	return err
}

func (e *eventPrinter) StartElement(el *xmlns.Element) error {
	var b strings.Builder
	b.WriteString(e.qualified(el.Name))
	for _, attr := range el.Attrs {
		fmt.Fprintf(&b, " %s=%q", e.qualified(attr.Name), attr.Value)
	}
	for _, d := range el.Decls {
		if d.Prefix == "" {
			fmt.Fprintf(&b, " xmlns=%q", d.URI)
			continue
		}
		fmt.Fprintf(&b, " xmlns:%s=%q", d.Prefix, d.URI)
	}
	if err := e.line("start %s", b.String()); err != nil {
		return err
	}
	e.depth++
	return nil
}

func (e *eventPrinter) EndElement(name xmlns.Name) error {
	e.depth--
	return e.line("end %s", e.qualified(name))
}

func (e *eventPrinter) Text(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return e.line("text %s", e.pal.text.Sprintf("%q", data))
}
