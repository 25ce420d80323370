package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/kundeploy/internal/build"
	"github.com/shaharia-lab/kundeploy/internal/config"
	"github.com/shaharia-lab/kundeploy/internal/deploy"
	"github.com/shaharia-lab/kundeploy/internal/kunmap"
	"github.com/shaharia-lab/kundeploy/internal/logger"
)

// NewRootCmd returns the kundeploy command. It copies the kun map page assets
// into <output_directory>/kun.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	var webDir, kanjiDB string

	cmd := &cobra.Command{
		Use:   "kundeploy <output_directory>",
		Short: "Deploy the kun map page into an output directory",
		Long: `Copy kunmap.js and kunmap.html (as index.html) from the web directory into
<output_directory>/kun. The kun directory must already exist.

The web directory defaults to ./web, resolved against the current working
directory. Only the first argument is used; any others are ignored. Flags
must come before <output_directory>; everything after it is taken as a
plain argument. Use "--" when the output directory itself starts with "-".`,
		Version:       build.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &deploy.MissingArgumentError{}
			}

			// CLI flags override env config.
			if cmd.Flags().Changed("web-dir") {
				cfg.WebDir = webDir
			}
			if cmd.Flags().Changed("kanji-db") {
				cfg.KanjiDB = kanjiDB
			}

			return runDeploy(cfg, args[0], cmd.OutOrStdout())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	// Stop flag parsing at the output directory so trailing extras such as
	// "-h" are ignored like any other extra argument.
	cmd.Flags().SetInterspersed(false)
	cmd.FParseErrWhitelist.UnknownFlags = true
	cmd.Flags().StringVar(&webDir, "web-dir", cfg.WebDir, "Directory containing kunmap.js and kunmap.html (overrides KUNMAP_WEB_DIR env var)")
	cmd.Flags().StringVar(&kanjiDB, "kanji-db", cfg.KanjiDB, "Kanji database used to write kun/kun_map.json (overrides KUNMAP_KANJI_DB env var)")

	return cmd
}

func runDeploy(cfg *config.AppConfig, outputDir string, out io.Writer) error {
	base, err := logger.New(cfg.LogDir, cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	runLog := logger.WithRunID(base)

	runLog.Info("kundeploy starting",
		slog.String("output_dir", outputDir),
		slog.String("web_dir", cfg.ResolvedWebDir()),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
	)

	d := deploy.New(deploy.DefaultAssets(cfg.WebDir), out, runLog)
	if err := d.Run(outputDir); err != nil {
		return err
	}

	if cfg.KanjiDB != "" {
		target := filepath.Join(outputDir, deploy.TargetDir, kunmap.FileName)
		n, err := kunmap.Generate(cfg.KanjiDB, target)
		if err != nil {
			runLog.Error("kun map generation failed", slog.Any("error", err))
			return fmt.Errorf("generating kun map: %w", err)
		}
		runLog.Info("kun map written", slog.String("path", target), slog.Int("readings", n))
		fmt.Fprintf(out, "'%s' -> '%s'\n", cfg.KanjiDB, target)
	}

	runLog.Info("deploy finished")
	return nil
}

// ExitCode maps an error returned by the root command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var copyErr *deploy.CopyError
	if errors.As(err, &copyErr) && copyErr.Code != 0 {
		return copyErr.Code
	}
	return 1
}

// Run executes kundeploy with args and returns the exit status. The missing
// argument message goes to stdout; every other error goes to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}

	root := NewRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err = root.Execute()
	var missing *deploy.MissingArgumentError
	switch {
	case err == nil:
	case errors.As(err, &missing):
		fmt.Fprintln(stdout, err)
	default:
		fmt.Fprintln(stderr, err)
	}
	return ExitCode(err)
}

// Execute runs kundeploy with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
