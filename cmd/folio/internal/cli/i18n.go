package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/folio-press/folio"
	"github.com/folio-press/folio/internal/commands/i18ncmd"
	"github.com/folio-press/folio/internal/i18n"
)

func newTranslateCommand(a *app) *cobra.Command {
	var (
		lang   string
		vars   map[string]string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "translate <key>",
		Short: "Resolve a translation key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = module.Config().DefaultLanguage
			}
			values := folio.TranslationVars{}
			for k, v := range vars {
				values[k] = v
			}
			var opts []folio.TranslateOption
			if cmd.Flags().Changed("strict") {
				opts = append(opts, i18n.WithStrict(strict))
			}
			out, err := module.Translate(cmd.Context(), args[0], lang, values, opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language (defaults to config)")
	cmd.Flags().StringToStringVar(&vars, "var", nil, "placeholder value, e.g. --var name=Ana")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on missing keys")
	return cmd
}

func newLangCommand(a *app) *cobra.Command {
	var signals folio.LanguageSignals
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Resolve the active language from request signals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), module.ResolveLanguage(signals))
			return err
		},
	}
	cmd.Flags().StringVar(&signals.Path, "path", "", "request path")
	cmd.Flags().StringVar(&signals.Stored, "stored", "", "stored preference")
	cmd.Flags().StringSliceVar(&signals.Preferred, "prefer", nil, "client languages in preference order")
	cmd.Flags().StringVar(&signals.AcceptLanguage, "accept", "", "raw Accept-Language header")
	return cmd
}

func newI18nCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation dictionary tools",
	}
	cmd.AddCommand(newI18nCheckCommand(a), newI18nWatchCommand(a))
	return cmd
}

func newI18nCheckCommand(a *app) *cobra.Command {
	var msg i18ncmd.CheckTranslationsCommand
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report missing translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			for _, key := range module.Config().I18N.RequiredKeys {
				if !slices.Contains(msg.RequiredKeys, key) {
					msg.RequiredKeys = append(msg.RequiredKeys, key)
				}
			}
			handler := module.CheckTranslationsHandler(func(_ context.Context, report i18n.Report) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), report.String())
				return err
			})
			return handler.Execute(cmd.Context(), msg)
		},
	}
	cmd.Flags().StringSliceVar(&msg.Languages, "lang", nil, "languages to check (defaults to all)")
	cmd.Flags().StringSliceVar(&msg.RequiredKeys, "require", nil, "keys every language must define")
	cmd.Flags().BoolVar(&msg.FailOnMissing, "fail", false, "exit non-zero when anything is missing")
	return cmd
}

func newI18nWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Invalidate the dictionary cache whenever the file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s\n", module.Container().DictionaryPath())
			err = module.WatchTranslations(cmd.Context(), func() {
				report, err := module.TranslationCoverage(cmd.Context())
				if err != nil {
					fmt.Fprintf(out, "dictionary reload failed: %v\n", err)
					return
				}
				fmt.Fprintf(out, "dictionary reloaded: %s\n", report)
			})
			if err != nil && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}
