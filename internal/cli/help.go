package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/version"
)

// Banner prints the version header shown on every run.
func Banner(program string, w io.Writer) {
	fmt.Fprintf(w, "%s version %s %s\n", program, version.Format(version.Resolve()), version.Copyright(time.Now().Year()))
	fmt.Fprintf(w, "  built with %s\n", version.CompilerIdent())
	if cfg := version.Configuration(); cfg != "" {
		fmt.Fprintf(w, "  configuration: %s\n", cfg)
	}
	for _, lib := range version.Libraries() {
		fmt.Fprintf(w, "  %-12s %2d.%3d.%3d\n", lib.Name, lib.Major, lib.Minor, lib.Micro)
	}
}

func Usage(program string, w io.Writer) {
	fmt.Fprintf(w, "Simple multimedia streams analyzer\n")
	fmt.Fprintf(w, "usage: %s [OPTIONS] INPUT_FILE\n\n", program)
}

// Help prints usage followed by the option table.
func Help(program string, w io.Writer) {
	Usage(program, w)
	fmt.Fprintln(w, "Main options:")
	for _, o := range options {
		if o.flags&optExpert != 0 {
			continue
		}
		printOption(w, o)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Advanced options:")
	for _, o := range options {
		if o.flags&optExpert != 0 {
			printOption(w, o)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "See '%s transcode --help' for the audio transcode command.\n", program)
}

func printOption(w io.Writer, o option) {
	name := o.name
	if o.flags&optArg != 0 {
		name += " " + o.argName
	}
	fmt.Fprintf(w, "-%-28s %s\n", name, o.help)
}

// Formats lists the registered demuxers.
func Formats(w io.Writer) {
	fmt.Fprintln(w, "File formats:")
	fmt.Fprintln(w, " D. = Demuxing supported")
	fmt.Fprintln(w, " .E = Muxing supported")
	fmt.Fprintln(w, " --")
	for _, f := range demux.Formats() {
		flags := "D "
		if f.Name == "wav" {
			flags = "DE"
		}
		fmt.Fprintf(w, " %s %-15s %s\n", flags, f.Name, f.LongName)
		if len(f.Extensions) > 0 {
			fmt.Fprintf(w, "    %-15s (%s)\n", "", strings.Join(f.Extensions, ","))
		}
	}
}
