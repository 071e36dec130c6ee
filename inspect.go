package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/diamondburned/gtkicons/gresource"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Inspect prints every file stored in the bundle at path with its sizes.
func Inspect(out io.Writer, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "Failed to read resource bundle")
	}

	r, err := gresource.Read(b)
	if err != nil {
		return err
	}

	files, err := r.Files()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tSIZE\tSTORED\tCOMPRESSED")

	for _, file := range files {
		e, err := r.Stat(file)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n",
			e.Path,
			humanize.IBytes(uint64(e.Size)),
			humanize.IBytes(uint64(e.StoredSize)),
			e.Flags&gresource.FlagCompressed != 0,
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d files, %s\n", len(files), humanize.IBytes(uint64(len(b))))
	return nil
}
