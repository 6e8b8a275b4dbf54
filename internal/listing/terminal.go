package listing

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Terminal reports whether the writer is an interactive terminal. Listings
// fall back to plain table borders when it is not.
func Terminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
