package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"     _                               _           ", "#38bdf8"},
	{"  __| | ___   ___ _ __ ___ _ __   __| | ___ _ __ ", "#60a5fa"},
	{" / _` |/ _ \\ / __| '__/ _ \\ '_ \\ / _` |/ _ \\ '__|", "#818cf8"},
	{"| (_| | (_) | (__| | |  __/ | | | (_| |  __/ |   ", "#a78bfa"},
	{" \\__,_|\\___/ \\___|_|  \\___|_| |_|\\__,_|\\___|_|   ", "#c084fc"},
}

// PrintBanner writes the ASCII art banner to w, coloured for the terminal's profile.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
