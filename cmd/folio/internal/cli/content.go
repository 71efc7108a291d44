package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-press/folio"
	"github.com/folio-press/folio/internal/commands/contentcmd"
)

func newDiscoverCommand(a *app) *cobra.Command {
	var msg contentcmd.DiscoverCommand
	cmd := &cobra.Command{
		Use:   "discover [subdir]",
		Short: "Print the content catalog as JSON; subdir is relative to --content-dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			msg.Directory = "."
			if len(args) == 1 {
				msg.Directory = args[0]
			}
			if !cmd.Flags().Changed("max-depth") {
				msg.MaxDepth = module.Config().Content.MaxDepth
			}
			if !cmd.Flags().Changed("include-hidden") {
				msg.IncludeHidden = module.Config().Content.IncludeHidden
			}
			if !cmd.Flags().Changed("allow-raw") {
				msg.AllowRawMarkup = module.Config().Content.AllowRawMarkup
			}
			if !cmd.Flags().Changed("flat") {
				msg.Flat = !module.Config().Content.Recursive
			}
			if msg.FeaturedOnly && msg.Limit == 0 {
				msg.Limit = module.Config().Content.FeaturedLimit
			}

			handler := module.DiscoverHandler(func(_ context.Context, catalog contentcmd.Catalog) error {
				return writeJSON(cmd.OutOrStdout(), catalog)
			})
			return handler.Execute(cmd.Context(), msg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&msg.Language, "lang", "", "only records in this language")
	flags.StringVar(&msg.Fallback, "fallback", "", "language used when --lang has no records")
	flags.BoolVar(&msg.FeaturedOnly, "featured", false, "only featured records")
	flags.IntVar(&msg.Limit, "limit", 0, "featured limit (defaults to config)")
	flags.BoolVar(&msg.Flat, "flat", false, "do not descend into sub-directories")
	flags.BoolVar(&msg.IncludeHidden, "include-hidden", false, "visit dot-prefixed files and directories")
	flags.IntVar(&msg.MaxDepth, "max-depth", 0, "maximum directory depth")
	flags.BoolVar(&msg.AllowRawMarkup, "allow-raw", false, "keep raw HTML in rendered bodies")
	return cmd
}

type featuredEntry struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	StartDate string   `json:"startDate"`
	Tags      []string `json:"tags"`
	HeroImage string   `json:"heroImage,omitempty"`
	HeroAlt   string   `json:"heroAlt"`
	Language  string   `json:"language"`
}

func newFeaturedCommand(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = module.Config().DefaultLanguage
			}
			records, err := module.Featured(cmd.Context(), lang)
			if err != nil {
				return err
			}
			entries := make([]featuredEntry, 0, len(records))
			for _, r := range records {
				entry := featuredEntry{
					Slug:      r.Slug,
					Title:     r.Title(),
					StartDate: r.Frontmatter.String("startDate"),
					Tags:      r.Frontmatter.Strings("tags"),
					HeroAlt:   r.HeroAlt,
					Language:  r.Language.String(),
				}
				if r.HeroImageValid {
					entry.HeroImage = r.Frontmatter.String("heroImage")
				}
				entries = append(entries, entry)
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language (defaults to config)")
	return cmd
}

func newRenderCommand(a *app) *cobra.Command {
	var (
		allowRaw bool
		asJSON   bool
		css      bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Markdown file to HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.moduleFor(cmd)
			if err != nil {
				return err
			}
			if css {
				return module.Renderer().WriteStylesheet(cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return fmt.Errorf("render: a file is required unless --css is set")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result, err := module.Render(string(data), folio.RenderOptions{AllowRawMarkup: allowRaw})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"metadata": result.Metadata,
					"body":     result.Body,
					"html":     result.HTML,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
			return err
		},
	}
	cmd.Flags().BoolVar(&allowRaw, "allow-raw", false, "keep raw HTML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metadata, body and HTML as JSON")
	cmd.Flags().BoolVar(&css, "css", false, "print the highlight stylesheet instead")
	return cmd
}
