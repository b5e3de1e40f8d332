package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/cli"
	"github.com/autobrr/go-avprobe/internal/config"
	"github.com/autobrr/go-avprobe/internal/observability"
	"github.com/autobrr/go-avprobe/internal/transcode"
	"github.com/autobrr/go-avprobe/internal/version"
)

// configEnv points at a config file for the probe command, which takes no
// long flags of its own.
const configEnv = "AVPROBE_CONFIG"

const helpBanner = "" +
	"                                                  _\n" +
	"   __ ___   ___ __  _ __ ___ | |__   ___\n" +
	"  / _` \\ \\ / / '_ \\| '__/ _ \\| '_ \\ / _ \\\n" +
	" | (_| |\\ V /| |_) | | | (_) | |_) |  __/\n" +
	"  \\__,_| \\_/ | .__/|_|  \\___/|_.__/ \\___|\n" +
	"             |_|"

const helpTemplate = helpBanner + `

{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

var rootCmd = &cobra.Command{
	Use:                "avprobe [options] <input>",
	Short:              "Simple multimedia streams analyzer.",
	Long:               "Simple multimedia streams analyzer. Probe options follow ffprobe; run 'avprobe -h' for the full list.",
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(os.Getenv(configEnv))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
			os.Exit(1)
		}
		os.Exit(cli.Run(cmd.Context(), append([]string{cmd.Name()}, args...), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg))
	},
}

var transcodeOpts struct {
	config    string
	output    string
	frameSize int
	sampleFmt string
	jobs      int
}

var transcodeCmd = &cobra.Command{
	Use:   "transcode [flags] <input> [input...]",
	Short: "Re-frame PCM audio into WAV files",
	Long:  "Decode the first PCM audio stream of every input, re-frame it to a fixed frame size and write it as WAV.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(transcodeOpts.config)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("output") {
			cfg.Transcode.OutputDir = transcodeOpts.output
		}
		if flags.Changed("frame-size") {
			cfg.Transcode.FrameSize = transcodeOpts.frameSize
		}
		if flags.Changed("jobs") {
			cfg.Transcode.Jobs = transcodeOpts.jobs
		}
		sampleFmt := cfg.Transcode.SampleFmt
		if flags.Changed("sample-fmt") {
			sampleFmt = transcodeOpts.sampleFmt
		}

		opts := transcode.Options{
			OutputDir: cfg.Transcode.OutputDir,
			FrameSize: cfg.Transcode.FrameSize,
			SampleFmt: audio.SampleFmtNone,
			Jobs:      cfg.Transcode.Jobs,
			ProbeSize: cfg.Probe.ProbeSize,
		}
		if sampleFmt != "same" {
			if opts.SampleFmt, err = audio.ParseSampleFormat(sampleFmt); err != nil {
				return fmt.Errorf("invalid sample format '%s': %w", sampleFmt, err)
			}
		}
		if opts.FrameSize <= 0 || opts.Jobs <= 0 {
			return errors.New("frame size and jobs must be positive")
		}

		logger := observability.NewLogger(cfg.Logging)
		results, err := transcode.RunAll(cmd.Context(), args, opts, logger)
		for _, r := range results {
			if r.Output == "" {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d samples, %d frames)\n", r.Input, r.Output, r.Stats.SamplesOut, r.Stats.FramesEncoded)
		}
		return err
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update avprobe",
	Long:  "Update avprobe to latest version (release builds only).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSelfUpdate(cmd.Context())
	},
	DisableFlagsInUseLine: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print avprobe version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli.Version(cmd.OutOrStdout())
		return nil
	},
	DisableFlagsInUseLine: true,
}

var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect avprobe configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return cfg.Dump(cmd.OutOrStdout())
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SetHelpTemplate(helpTemplate)

	f := transcodeCmd.Flags()
	f.StringVar(&transcodeOpts.config, "config", "", "config file path")
	f.StringVarP(&transcodeOpts.output, "output", "o", "", "output directory (default from config)")
	f.IntVar(&transcodeOpts.frameSize, "frame-size", 0, "samples per encoded frame (default from config)")
	f.StringVar(&transcodeOpts.sampleFmt, "sample-fmt", "", "output sample format, or 'same' to keep the input's")
	f.IntVarP(&transcodeOpts.jobs, "jobs", "j", 0, "files transcoded in parallel (default from config)")
	configDumpCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	configCmd.AddCommand(configDumpCmd)

	rootCmd.AddCommand(transcodeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func runSelfUpdate(ctx context.Context) error {
	current := version.Resolve()
	if current == "dev" {
		return errors.New("self-update is only available in release builds")
	}

	if _, err := semver.ParseTolerant(current); err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(version.Slug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found from github repository", version.Slug, current)
	}

	if latest.LessOrEqual(current) {
		fmt.Printf("Current binary is the latest version: %s\n", version.Format(current))
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Printf("Successfully updated to version: %s\n", version.Format(latest.Version()))
	return nil
}
