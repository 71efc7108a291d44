// Package cli builds the folio command tree.
//
// Configuration is merged from, in increasing precedence: built-in defaults,
// the --config file, FOLIO_<SECTION>_<OPTION> environment variables and
// explicitly set flags.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/folio-press/folio"
	"github.com/folio-press/folio/cmd/folio/internal/bootstrap"
)

// ModuleBuilder constructs the module from bootstrap options.
type ModuleBuilder func(bootstrap.Options) (*folio.Module, error)

type app struct {
	configFile string
	build      ModuleBuilder
	moduleOpts []folio.Option
	module     *folio.Module
}

// Option customises the command tree.
type Option func(*app)

// WithModuleBuilder replaces bootstrap.BuildModule.
func WithModuleBuilder(build ModuleBuilder) Option {
	return func(a *app) {
		if build != nil {
			a.build = build
		}
	}
}

// WithModuleOptions forwards options to folio.New.
func WithModuleOptions(opts ...folio.Option) Option {
	return func(a *app) {
		a.moduleOpts = append(a.moduleOpts, opts...)
	}
}

// NewRootCommand returns the folio root command with every subcommand attached.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{build: bootstrap.BuildModule}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Discover, render and translate portfolio content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (YAML, JSON or TOML)")
	flags.String("content-dir", "", "directory holding project Markdown files")
	flags.String("public-dir", "", "directory hero images are resolved against")
	flags.String("dictionary", "", "translation dictionary file (.json or .yaml)")
	flags.String("default-lang", "", "fallback language (en or es)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (json, console, pretty)")
	flags.BoolP("verbose", "v", false, "enable structured logging")

	root.AddCommand(
		newDiscoverCommand(a),
		newFeaturedCommand(a),
		newRenderCommand(a),
		newTranslateCommand(a),
		newLangCommand(a),
		newI18nCommand(a),
	)
	return root
}

// Execute runs the command tree with args against ctx.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) error {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) moduleFor(cmd *cobra.Command) (*folio.Module, error) {
	if a.module != nil {
		return a.module, nil
	}
	module, err := a.build(bootstrap.Options{
		ConfigFile:    a.configFile,
		Flags:         cmd.Flags(),
		ModuleOptions: append([]folio.Option{folio.WithDiagnosticsWriter(cmd.ErrOrStderr())}, a.moduleOpts...),
	})
	if err != nil {
		return nil, err
	}
	a.module = module
	return module, nil
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
