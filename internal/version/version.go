// Package version holds build identification. Version, Commit and Date are
// set with -ldflags "-X" at release time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/blang/semver"
)

const (
	AppName   = "avprobe"
	AppURL    = "https://github.com/autobrr/go-avprobe"
	Slug      = "autobrr/go-avprobe"
	BirthYear = 2025
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Resolve returns the release version without its v prefix. Builds
// without ldflags fall back to the main module version, then "dev".
func Resolve() string {
	if Version != "" && Version != "dev" {
		return Normalize(Version)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return Normalize(info.Main.Version)
		}
	}
	return "dev"
}

func Normalize(value string) string {
	return strings.TrimPrefix(value, "v")
}

// Format decorates a version for display.
func Format(v string) string {
	if v == "" || v == "dev" {
		return "dev"
	}
	return "v" + Normalize(v)
}

// Copyright is the banner line of the version output.
func Copyright(year int) string {
	if year < BirthYear {
		year = BirthYear
	}
	return fmt.Sprintf("Copyright (c) %d-%d the go-avprobe developers", BirthYear, year)
}

// CompilerIdent names the toolchain the binary was built with.
func CompilerIdent() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Configuration lists the build settings recorded in the binary.
func Configuration() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var parts []string
	for _, s := range info.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			continue
		}
		parts = append(parts, s.Key+"="+s.Value)
	}
	return strings.Join(parts, " ")
}

// Library is one media library linked into the binary.
type Library struct {
	Name  string
	Major uint64
	Minor uint64
	Micro uint64
	Ident string
}

// Packed returns major<<16 | minor<<8 | micro.
func (l Library) Packed() uint64 {
	return l.Major<<16 | l.Minor<<8 | l.Micro
}

var libraryModules = []struct {
	name string
	path string
}{
	{"astits", "github.com/asticode/go-astits"},
	{"mediacommon", "github.com/bluenviron/mediacommon/v2"},
	{"gohlslib", "github.com/bluenviron/gohlslib/v2"},
	{"x/text", "golang.org/x/text"},
}

// Libraries reports the media libraries found in the build info, in a
// fixed order. Modules with unparsable versions are skipped.
func Libraries() []Library {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return librariesFrom(info.Deps)
}

func librariesFrom(deps []*debug.Module) []Library {
	var out []Library
	for _, lm := range libraryModules {
		for _, d := range deps {
			mod := d
			if d.Replace != nil {
				mod = d.Replace
			}
			if d.Path != lm.path {
				continue
			}
			v, err := semver.ParseTolerant(mod.Version)
			if err != nil {
				continue
			}
			out = append(out, Library{
				Name:  lm.name,
				Major: v.Major,
				Minor: v.Minor,
				Micro: v.Patch,
				Ident: fmt.Sprintf("%s %s", lm.name, mod.Version),
			})
		}
	}
	return out
}
