package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/observability"
	"github.com/autobrr/go-avprobe/internal/probe"
	"github.com/autobrr/go-avprobe/internal/section"
	"github.com/autobrr/go-avprobe/internal/writer"
)

var (
	ErrUnknownOption = errors.New("option not found")
	ErrMissingArg    = errors.New("missing argument for option")
)

type optFlags int

const (
	optBool optFlags = 1 << iota
	optArg
	optExpert
)

type option struct {
	name    string
	flags   optFlags
	argName string
	help    string
	// set receives the argument, or "1"/"0" for bool options.
	set func(st *state, arg string) error
}

func showSection(id section.ID) func(*state, string) error {
	return func(st *state, _ string) error {
		st.sel.Mark(id, true, nil)
		return nil
	}
}

func setBool(p func(st *state) *bool) func(*state, string) error {
	return func(st *state, arg string) error {
		*p(st) = arg == "1"
		return nil
	}
}

var options []option

func init() {
	options = []option{
		{name: "h", help: "show help", set: optHelp},
		{name: "?", help: "show help", set: optHelp},
		{name: "help", help: "show help", set: optHelp},
		{name: "version", help: "show version", set: func(st *state, _ string) error {
			Version(st.stdout)
			return errExit
		}},
		{name: "formats", help: "show available formats", set: func(st *state, _ string) error {
			Formats(st.stdout)
			return errExit
		}},
		{name: "loglevel", flags: optArg, argName: "loglevel", help: "set logging level", set: noop},
		{name: "v", flags: optArg, argName: "loglevel", help: "set logging level", set: noop},
		{name: "report", help: "generate a report", set: noop},
		{name: "hide_banner", flags: optBool, help: "do not show program banner", set: noop},

		{name: "f", flags: optArg, argName: "format", help: "force format", set: func(st *state, arg string) error {
			if demux.FindFormat(arg) == nil {
				return fmt.Errorf("Unknown input format: %s", arg)
			}
			st.probe.Format = arg
			return nil
		}},
		{name: "probesize", flags: optArg | optExpert, argName: "bytes", help: "set the number of bytes read while analyzing streams", set: func(st *state, arg string) error {
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || n < 32 {
				return fmt.Errorf("Invalid probesize '%s'", arg)
			}
			st.probe.ProbeSize = n
			return nil
		}},
		{name: "unit", flags: optBool, help: "show unit of the displayed values", set: setBool(func(st *state) *bool { return &st.probe.Writer.Unit })},
		{name: "prefix", flags: optBool, help: "use SI prefixes for the displayed values", set: setBool(func(st *state) *bool { return &st.probe.Writer.Prefix })},
		{name: "byte_binary_prefix", flags: optBool, help: "use binary prefixes for byte units", set: setBool(func(st *state) *bool { return &st.probe.Writer.BinaryPrefix })},
		{name: "sexagesimal", flags: optBool, help: "use sexagesimal format HOURS:MM:SS.MICROSECONDS for time units", set: setBool(func(st *state) *bool { return &st.probe.Writer.Sexagesimal })},
		{name: "pretty", help: "prettify the format of displayed values, make it more human readable", set: func(st *state, _ string) error {
			st.pretty = true
			return nil
		}},
		{name: "output_format", flags: optArg, argName: "format", help: "set the output printing format (available formats are: " + strings.Join(writer.Names(), ", ") + ")", set: setOutputFormat},
		{name: "print_format", flags: optArg, argName: "format", help: "alias for -output_format (deprecated)", set: setOutputFormat},
		{name: "of", flags: optArg, argName: "format", help: "alias for -output_format", set: setOutputFormat},
		{name: "select_streams", flags: optArg, argName: "stream_specifier", help: "select the specified streams", set: func(st *state, arg string) error {
			if _, err := demux.ParseStreamSpecifier(arg); err != nil {
				return fmt.Errorf("Invalid stream specifier: %s", arg)
			}
			st.probe.SelectStreams = arg
			return nil
		}},
		{name: "sections", help: "print sections structure and section information, and exit", set: func(st *state, _ string) error {
			section.PrintSections(st.stdout)
			return errExit
		}},
		{name: "show_data", flags: optBool, help: "show packets data", set: setBool(func(st *state) *bool { return &st.probe.ShowData })},
		{name: "show_data_hash", flags: optArg, argName: "hash", help: "show packets data hash", set: func(st *state, arg string) error {
			if _, _, err := writer.NewHash(arg); err != nil {
				return fmt.Errorf("Unknown hash algorithm '%s'\nKnown algorithms: %s", arg, strings.Join(writer.HashNames(), " "))
			}
			st.probe.Writer.Hash = arg
			return nil
		}},
		{name: "show_error", help: "show probing error", set: showSection(section.Error)},
		{name: "show_format", help: "show format/container info", set: showSection(section.Format)},
		{name: "show_frames", help: "show frames info", set: showSection(section.Frames)},
		{name: "show_entries", flags: optArg, argName: "entry_list", help: "show a set of specified entries", set: func(st *state, arg string) error {
			return st.sel.ParseShowEntries(arg)
		}},
		{name: "show_log", flags: optArg, argName: "level", help: "show log", set: func(st *state, arg string) error {
			n, err := strconv.Atoi(arg)
			if err != nil || n < observability.AVQuiet {
				return fmt.Errorf("Expected number for show_log but found: %s", arg)
			}
			st.probe.ShowLog = n
			return nil
		}},
		{name: "show_packets", help: "show packets info", set: showSection(section.Packets)},
		{name: "show_programs", help: "show programs info", set: showSection(section.Programs)},
		{name: "show_stream_groups", help: "show stream groups info", set: showSection(section.StreamGroups)},
		{name: "show_streams", help: "show streams info", set: showSection(section.Streams)},
		{name: "show_chapters", help: "show chapters info", set: showSection(section.Chapters)},
		{name: "count_frames", flags: optBool, help: "count the number of frames per stream", set: setBool(func(st *state) *bool { return &st.probe.CountFrames })},
		{name: "count_packets", flags: optBool, help: "count the number of packets per stream", set: setBool(func(st *state) *bool { return &st.probe.CountPackets })},
		{name: "show_program_version", help: "show avprobe version", set: showSection(section.ProgramVersion)},
		{name: "show_library_versions", help: "show library versions", set: showSection(section.LibraryVersions)},
		{name: "show_versions", help: "show program and library versions", set: func(st *state, _ string) error {
			st.sel.Mark(section.ProgramVersion, true, nil)
			st.sel.Mark(section.LibraryVersion, true, nil)
			return nil
		}},
		{name: "show_pixel_formats", help: "show pixel format descriptions", set: showSection(section.PixelFormats)},
		{name: "show_optional_fields", flags: optArg, argName: "mode", help: "show optional fields", set: func(st *state, arg string) error {
			st.showOpt = strings.ToLower(arg)
			return nil
		}},
		{name: "show_private_data", flags: optBool, help: "show private data", set: setBool(func(st *state) *bool { return &st.probe.Writer.ShowPrivate })},
		{name: "private", flags: optBool, help: "same as show_private_data", set: setBool(func(st *state) *bool { return &st.probe.Writer.ShowPrivate })},
		{name: "bitexact", flags: optBool, help: "force bitexact output", set: setBool(func(st *state) *bool { return &st.probe.Bitexact })},
		{name: "read_intervals", flags: optArg, argName: "read_intervals", help: "set read intervals", set: func(st *state, arg string) error {
			ivs, err := probe.ParseIntervals(arg)
			if err != nil {
				return err
			}
			st.probe.Intervals = ivs
			return nil
		}},
		{name: "i", flags: optArg, argName: "input_file", help: "read specified file", set: func(st *state, arg string) error {
			return st.setInput(arg)
		}},
		{name: "print_filename", flags: optArg, argName: "print_file", help: "override the printed input filename", set: func(st *state, arg string) error {
			st.probe.PrintFilename = arg
			return nil
		}},
	}
}

func noop(*state, string) error { return nil }

func optHelp(st *state, _ string) error {
	Help(st.program, st.stdout)
	return errExit
}

func setOutputFormat(st *state, arg string) error {
	st.probe.OutputFormat = arg
	return nil
}

func findOption(name string) *option {
	for i := range options {
		if options[i].name == name {
			return &options[i]
		}
	}
	return nil
}

func (st *state) setInput(arg string) error {
	if st.input != "" {
		return fmt.Errorf("Argument '%s' provided as input filename, but '%s' was already specified.", arg, st.input)
	}
	st.input = arg
	return nil
}

// parse walks the command line. Options start with a dash; "--" ends
// option parsing and a lone "-" is an input. Boolean options accept a
// "no" prefix to turn them off.
func (st *state) parse(args []string, logger *slog.Logger) error {
	handleOptions := true
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !handleOptions || len(arg) < 2 || arg[0] != '-' {
			if err := st.setInput(arg); err != nil {
				return err
			}
			continue
		}
		if arg == "--" {
			handleOptions = false
			continue
		}
		name := arg[1:]
		value := "1"
		opt := findOption(name)
		if opt == nil {
			if base, ok := strings.CutPrefix(name, "no"); ok {
				if o := findOption(base); o != nil && o.flags&optBool != 0 {
					opt, value = o, "0"
				}
			}
		}
		if opt == nil {
			return fmt.Errorf("Unrecognized option '%s'.\nError splitting the argument list: %w", name, ErrUnknownOption)
		}
		if opt.flags&optArg != 0 {
			if i+1 >= len(args) {
				return fmt.Errorf("%w '%s'", ErrMissingArg, name)
			}
			i++
			value = args[i]
		}
		logger.Debug(fmt.Sprintf("Applying option %s (%s) with argument %s.", name, opt.help, value))
		if err := opt.set(st, value); err != nil {
			if errors.Is(err, errExit) {
				return err
			}
			return fmt.Errorf("Failed to set value '%s' for option '%s': %w", value, name, err)
		}
	}
	return nil
}
