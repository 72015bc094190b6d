package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/urltemplate/batch"
	"github.com/byte4ever/urltemplate/config"
	"github.com/byte4ever/urltemplate/params"
	"github.com/byte4ever/urltemplate/urltemplate"
)

// errLinesFailed is returned by batch when at least one
// template was rejected.
var errLinesFailed = errors.New("some templates were rejected")

// app carries state shared by all subcommands. cfg and
// logger are populated in the root PersistentPreRunE.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	environ []string

	envFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

// substFlags are the flags common to commands that
// substitute parameters.
type substFlags struct {
	pairs      []string
	paramFiles []string
	strict     bool
	format     string
}

func newRootCmd(
	stdout io.Writer,
	stderr io.Writer,
	environ []string,
) *cobra.Command {
	ap := &app{stdout: stdout, stderr: stderr, environ: environ}

	root := &cobra.Command{
		Use:           "urltemplate",
		Short:         "Validate and fill URL templates with {name} placeholders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return ap.init()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(
		&ap.envFile, "env-file", ".env",
		"dotenv file with URLTEMPLATE_* settings (ignored if missing)",
	)

	root.PersistentFlags().StringVar(
		&ap.logLevel, "log-level", "",
		"log level (debug, info, warn, error)",
	)

	root.AddCommand(
		ap.newSubstituteCmd(),
		ap.newCheckCmd(),
		ap.newBatchCmd(),
	)

	return root
}

func (ap *app) init() error {
	const errCtx = "initializing"

	cfg, err := config.Load(ap.envFile, ap.environ)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if ap.logLevel != "" {
		cfg.LogLevel = ap.logLevel
	}

	lvl, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ap.cfg = cfg
	ap.logger = slog.New(slog.NewTextHandler(
		ap.stderr, &slog.HandlerOptions{Level: lvl},
	))

	return nil
}

func bindSubstFlags(cmd *cobra.Command, sf *substFlags) {
	cmd.Flags().StringArrayVarP(
		&sf.pairs, "param", "p", nil,
		"parameter in NAME=VALUE format (repeatable)",
	)

	cmd.Flags().StringArrayVar(
		&sf.paramFiles, "param-file", nil,
		"parameter file: .json, .yaml/.yml or KEY VALUE lines (repeatable)",
	)

	cmd.Flags().BoolVar(
		&sf.strict, "strict", false,
		"reject placeholders missing from the parameters",
	)

	cmd.Flags().StringVar(
		&sf.format, "format", "",
		"output format: text or json",
	)
}

// resolve merges config and flag settings. Config parameter
// files load first, then flag files, then explicit pairs.
func (ap *app) resolve(
	cmd *cobra.Command,
	sf *substFlags,
) (map[string]string, []urltemplate.Option, string, error) {
	const errCtx = "resolving parameters"

	fromFiles, err := params.Load(
		append(append([]string(nil), ap.cfg.ParamFiles...), sf.paramFiles...),
	)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%s: %w", errCtx, err)
	}

	fromPairs, err := params.ParsePairs(sf.pairs)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%s: %w", errCtx, err)
	}

	strict := ap.cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = sf.strict
	}

	var opts []urltemplate.Option
	if strict {
		opts = append(opts, urltemplate.WithStrict())
	}

	format := ap.cfg.Format
	if sf.format != "" {
		format = sf.format
	}

	if format != batch.FormatText && format != batch.FormatJSON {
		return nil, nil, "", fmt.Errorf(
			"%s: unknown format %q", errCtx, format,
		)
	}

	return params.Merge(fromFiles, fromPairs), opts, format, nil
}

func (ap *app) newSubstituteCmd() *cobra.Command {
	var sf substFlags

	cmd := &cobra.Command{
		Use:   "substitute TEMPLATE",
		Short: "Substitute parameters into one URL template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const errCtx = "substituting"

			vals, opts, format, err := ap.resolve(cmd, &sf)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			ap.logger.Debug(
				"substituting",
				"template", args[0],
				"params", len(vals),
			)

			got, subErr := urltemplate.New(args[0]).
				SubstituteURL(vals, opts...)

			if format == batch.FormatJSON {
				rec := batch.Record{Line: 1, Template: args[0]}
				if subErr != nil {
					rec.Error = batch.NewRecordError(subErr)
				} else {
					rec.URL = got.String()
				}

				enc := json.NewEncoder(ap.stdout)
				enc.SetEscapeHTML(false)

				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("%s: %w", errCtx, err)
				}
			}

			if subErr != nil {
				return fmt.Errorf("%s: %w", errCtx, subErr)
			}

			if format == batch.FormatText {
				if _, err := fmt.Fprintln(ap.stdout, got.String()); err != nil {
					return fmt.Errorf("%s: %w", errCtx, err)
				}
			}

			return nil
		},
	}

	bindSubstFlags(cmd, &sf)

	return cmd
}

func (ap *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check TEMPLATE",
		Short: "Validate a URL template and list its placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			const errCtx = "checking"

			names, err := urltemplate.New(args[0]).Placeholders()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			for _, name := range names {
				if _, err := fmt.Fprintln(ap.stdout, name); err != nil {
					return fmt.Errorf("%s: %w", errCtx, err)
				}
			}

			return nil
		},
	}
}

func (ap *app) newBatchCmd() *cobra.Command {
	var (
		sf      substFlags
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Substitute parameters into templates read one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "batch"

			vals, opts, format, err := ap.resolve(cmd, &sf)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			en := batch.Engine{
				Params:  vals,
				Options: opts,
				Format:  format,
				Logger:  ap.logger,
			}

			var sum batch.Summary

			if inPath == "" && outPath == "" {
				sum, err = en.Run(cmd.InOrStdin(), ap.stdout)
			} else {
				sum, err = en.Expand(inPath, outPath)
			}

			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			ap.logger.Info(
				"batch done",
				"total", sum.Total,
				"failed", sum.Failed,
			)

			if sum.Failed > 0 {
				return fmt.Errorf(
					"%s: %d of %d: %w",
					errCtx, sum.Failed, sum.Total, errLinesFailed,
				)
			}

			return nil
		},
	}

	bindSubstFlags(cmd, &sf)

	cmd.Flags().StringVar(
		&inPath, "input", "",
		"template file, one template per line (default: stdin)",
	)

	cmd.Flags().StringVar(
		&outPath, "output", "",
		"output file path (default: stdout)",
	)

	return cmd
}
