// Package cmd implements the track404 command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bitfield/track404"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
	v      *viper.Viper

	cfgFile string
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    newLogger(stderr, false),
		v:      viper.New(),
	}
}

func newLogger(w io.Writer, color bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Main runs the command with the process's arguments and standard streams,
// and returns the exit status.
func Main() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Execute runs the command and exits the process.
func Execute() {
	os.Exit(Main())
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stdout, stderr)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		a.log.Error().Err(err).Msg("track404 failed")
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track404 [flags] LOG...",
		Short: "Summarize repeated 404s in access logs",
		Long: `track404 reads one or more access logs and reports the request paths that
most often received a given HTTP status (404 by default).

Paths are anonymized before counting: query strings are removed and every run
of digits is replaced with <num>, so /users/17?tab=2 and /users/42 both count
as /users/<num>.

Each LOG is a file, a file ending in .gz, a glob such as "logs/**/*.log", or
"-" for standard input.

Examples:
  track404 /var/log/nginx/access.log
  track404 -m 10 -n 20 access.log access.log.1.gz
  zcat old.log.gz | track404 --status 500 -
  track404 --jq '.[0].path' access.log`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		RunE: a.runTrack,
	}
	f := cmd.Flags()
	f.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: $HOME/.track404.yaml)")
	f.IntP("min-count", "m", 5, "minimum hits required to display")
	f.IntP("top", "n", 0, "show only the top N paths (0 for all)")
	f.IntP("status", "s", 404, "HTTP status code to summarize")
	f.StringP("output", "o", "", "write results to this file instead of standard output")
	f.StringP("format", "f", "text", "output format: text, json")
	f.String("jq", "", "jq query applied to the JSON results")
	f.Bool("parallel", false, "read all logs concurrently")
	f.Bool("color", false, "colorize text output")
	f.BoolP("verbose", "v", false, "log progress to standard error")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("TRACK404")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".track404")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	a.log = newLogger(a.stderr, v.GetBool("color"))
	if v.GetBool("verbose") {
		a.log = a.log.Level(zerolog.DebugLevel)
	}
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

func (a *app) runTrack(cmd *cobra.Command, args []string) error {
	v := a.v

	format := strings.ToLower(v.GetString("format"))
	query := v.GetString("jq")
	if query != "" {
		format = "json"
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}

	sources, err := a.sources(args)
	if err != nil {
		return err
	}

	cfg := track404.Config{
		Sources:  sources,
		Parallel: v.GetBool("parallel"),
	}
	for _, s := range []struct {
		key string
		dst *int
	}{
		{"min-count", &cfg.MinCount},
		{"top", &cfg.Limit},
		{"status", &cfg.Status},
	} {
		if *s.dst, err = a.intSetting(s.key); err != nil {
			return err
		}
	}
	t, err := track404.New(cfg,
		track404.WithLogger(a.log),
		track404.WithStdin(a.stdin),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := t.Run(ctx)
	if err != nil {
		return err
	}
	a.log.Debug().Int("results", len(results)).Msg("selected")

	var p *track404.Pipe
	switch {
	case query != "":
		p = track404.JSON(results).JQ(query)
	case format == "json":
		p = track404.JSON(results)
	case v.GetBool("color"):
		p = colorLines(results)
	default:
		p = track404.Lines(results)
	}

	if out := v.GetString("output"); out != "" {
		if _, err := p.WriteFile(out); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		return nil
	}
	_, err = p.WithStdout(a.stdout).Stdout()
	return err
}

// sources returns the logs named on the command line, or else those listed
// under "logs" in the config, with globs expanded.
func (a *app) sources(args []string) ([]string, error) {
	if len(args) > 0 {
		return expandSources(args, false)
	}
	configured := a.v.GetStringSlice("logs")
	if len(configured) == 0 {
		return nil, errors.New("no logs to read: name at least one LOG, or set logs in the config file")
	}
	return expandSources(configured, true)
}

// intSetting returns the integer value of key, wherever it was set. Unlike
// viper's GetInt, a value that is not a number is an error rather than 0.
func (a *app) intSetting(key string) (int, error) {
	n, err := cast.ToIntE(a.v.Get(key))
	if err != nil {
		return 0, &track404.ConfigError{Err: fmt.Errorf("%s: %w", key, err)}
	}
	return n, nil
}
