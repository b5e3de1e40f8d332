package version

import (
	"runtime/debug"
	"testing"
)

func TestNormalizeAndFormat(t *testing.T) {
	if got := Normalize("v1.2.3"); got != "1.2.3" {
		t.Fatalf("Normalize = %q", got)
	}
	if got := Format("1.2.3"); got != "v1.2.3" {
		t.Fatalf("Format = %q", got)
	}
	if got := Format("dev"); got != "dev" {
		t.Fatalf("Format(dev) = %q", got)
	}
}

func TestResolveLdflags(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v0.4.1"
	if got := Resolve(); got != "0.4.1" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestCopyright(t *testing.T) {
	if got := Copyright(2026); got != "Copyright (c) 2025-2026 the go-avprobe developers" {
		t.Fatalf("Copyright = %q", got)
	}
	if got := Copyright(1999); got != "Copyright (c) 2025-2025 the go-avprobe developers" {
		t.Fatalf("Copyright(1999) = %q", got)
	}
}

func TestLibrariesFrom(t *testing.T) {
	deps := []*debug.Module{
		{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
		{Path: "github.com/bluenviron/mediacommon/v2", Version: "v2.6.0"},
		{Path: "github.com/asticode/go-astits", Version: "v1.14.0"},
		{Path: "golang.org/x/text", Version: "not-a-version"},
	}
	libs := librariesFrom(deps)
	if len(libs) != 2 {
		t.Fatalf("got %d libraries, want 2: %+v", len(libs), libs)
	}
	if libs[0].Name != "astits" || libs[0].Major != 1 || libs[0].Minor != 14 || libs[0].Micro != 0 {
		t.Fatalf("libs[0] = %+v", libs[0])
	}
	if libs[1].Name != "mediacommon" || libs[1].Packed() != 2<<16|6<<8 {
		t.Fatalf("libs[1] = %+v", libs[1])
	}
	if libs[1].Ident != "mediacommon v2.6.0" {
		t.Fatalf("ident = %q", libs[1].Ident)
	}
}
