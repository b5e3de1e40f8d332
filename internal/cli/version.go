package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/autobrr/go-avprobe/internal/version"
)

// Version prints the -version output.
func Version(w io.Writer) {
	fmt.Fprintf(w, "%s version %s %s\n", version.AppName, version.Format(version.Resolve()), version.Copyright(time.Now().Year()))
	fmt.Fprintf(w, "built with %s\n", version.CompilerIdent())
	if version.Commit != "" {
		fmt.Fprintf(w, "commit %s", version.Commit)
		if version.Date != "" {
			fmt.Fprintf(w, " (%s)", version.Date)
		}
		fmt.Fprintln(w)
	}
	for _, lib := range version.Libraries() {
		fmt.Fprintf(w, "%-12s %2d.%3d.%3d / %2d.%3d.%3d\n", lib.Name, lib.Major, lib.Minor, lib.Micro, lib.Major, lib.Minor, lib.Micro)
	}
}
