package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/app"
	"github.com/YoshitsuguKoike/tdd/internal/app/config"
	"github.com/YoshitsuguKoike/tdd/internal/buildinfo"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	infraConfig "github.com/YoshitsuguKoike/tdd/internal/infra/config"
	"github.com/YoshitsuguKoike/tdd/internal/infrastructure/di"
	"github.com/YoshitsuguKoike/tdd/internal/interface/cli/version"
	"github.com/YoshitsuguKoike/tdd/internal/telemetry"
)

// Env is everything the command tree takes from the process
type Env struct {
	Fs      afero.Fs
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
}

// DefaultEnv binds the command tree to the real process
func DefaultEnv() Env {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Env{
		Fs:      afero.NewOsFs(),
		WorkDir: wd,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
	}
}

// runtime is filled in by the root PersistentPreRunE and shared by subcommands
type runtime struct {
	env       Env
	logLevel  string
	json      bool
	container *di.Container
}

// NewRoot builds the tdd command tree for the current process
func NewRoot() *cobra.Command {
	return NewRootWithEnv(DefaultEnv())
}

// NewRootWithEnv builds the command tree against env
func NewRootWithEnv(env Env) *cobra.Command {
	rt := &runtime{env: env}

	cmd := &cobra.Command{
		Use:           "tdd",
		Short:         "Test-driven change lifecycle",
		Long:          "tdd manages changes through an artifact pipeline and merges their coverage deltas on archive.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.setup(cmd); err != nil {
				fmt.Fprintf(env.Stderr, "✗ Error: %v\n", err)
				return err
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	cmd.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&rt.json, "json", false, "print results as JSON")

	cmd.AddCommand(newInitCmd(rt))
	cmd.AddCommand(newChangeCmd(rt))
	cmd.AddCommand(newListCmd(rt))
	cmd.AddCommand(newShowCmd(rt))
	cmd.AddCommand(newStatusCmd(rt))
	cmd.AddCommand(newValidateCmd(rt))
	cmd.AddCommand(newArchiveCmd(rt))
	cmd.AddCommand(newCoverageCmd(rt))
	cmd.AddCommand(newSchemaCmd(rt))
	cmd.AddCommand(newViewCmd(rt))
	cmd.AddCommand(version.NewCommand())
	return cmd
}

// setup loads settings, configures logging and builds the container.
// Priority for the log level: --log-level > TDD_LOG_LEVEL > config.yaml > warn
func (rt *runtime) setup(cmd *cobra.Command) error {
	env := rt.env
	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}

	root := app.FindProjectRoot(env.Fs, env.WorkDir)
	paths := app.ResolvePaths(root)

	cfg, loadErr := infraConfig.LoadSettings(env.Fs, paths, env.Getenv)
	if loadErr != nil {
		cfg = config.NewAppConfig(schema.DefaultName, "", nil, "warn", true, "default", "")
	}

	level := rt.logLevel
	if level == "" {
		level = cfg.LogLevel()
	}
	logger := NewLogger(LogLevelFromString(level), env.Stderr)
	InitializeLoggers(logger)
	if loadErr != nil {
		logger.Warn("using default settings: %v", loadErr)
	}
	logger.Debug("project root %s, config source %s", root, cfg.ConfigSource())

	format := di.FormatCLI
	if rt.json {
		format = di.FormatJSON
	}

	container, err := di.NewContainer(di.Config{
		Fs:           env.Fs,
		ProjectRoot:  root,
		OutputFormat: format,
		OutputWriter: env.Stdout,
		Settings:     cfg,
		Telemetry:    telemetry.ResolveSettings(env.Getenv, cfg.TelemetryEnabled()),
	})
	if err != nil {
		return err
	}
	rt.container = container

	container.GetTelemetry().Track(cmd.CommandPath(), buildinfo.GetVersion())
	return nil
}

// fail presents err and returns it so the process exits non-zero
func (rt *runtime) fail(err error) error {
	_ = rt.container.GetPresenter().PresentError(err)
	return err
}

// rel shortens p to a project-relative path for display
func (rt *runtime) rel(p string) string {
	r, err := filepath.Rel(rt.container.Paths().Root, p)
	if err != nil {
		return p
	}
	return r
}

func (rt *runtime) relAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, rt.rel(p))
	}
	return out
}

// requireProject fails when tdd/ has not been initialised
func (rt *runtime) requireProject() error {
	home := rt.container.Paths().Home
	ok, err := afero.DirExists(rt.container.Fs(), home)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", home, err)
	}
	if !ok {
		return fmt.Errorf(`no %s/ directory found; run "tdd init" first`, app.DirName)
	}
	return nil
}
