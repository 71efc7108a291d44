package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"path"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/internal/slugs"
	"github.com/folio-press/folio/internal/validation"
	"github.com/folio-press/folio/pkg/interfaces"
)

// DefaultMaxDepth bounds directory recursion below the content root.
const DefaultMaxDepth = 10

// DefaultExtensions lists the file extensions treated as content.
var DefaultExtensions = []string{".md", ".mdx"}

// Options controls a single discovery run.
type Options struct {
	// Recursive descends into sub-directories. Nil means true.
	Recursive *bool
	// IncludeHidden visits dot-prefixed files and directories.
	IncludeHidden bool
	// MaxDepth caps the walk: root is depth 0 and directories at depth
	// MaxDepth or deeper are not entered. Zero uses DefaultMaxDepth.
	MaxDepth int
	// Extensions overrides DefaultExtensions. Matching ignores case.
	Extensions []string
	// AllowRawMarkup is forwarded to the renderer.
	AllowRawMarkup bool
}

// Discoverer walks a filesystem and assembles content records.
type Discoverer struct {
	files    fs.FS
	assets   fs.FS
	renderer interfaces.MarkdownRenderer
	schema   validation.Schema
	logger   interfaces.Logger
	workers  int
	runID    func() uuid.UUID
}

// DiscovererOption configures a Discoverer at construction time.
type DiscovererOption func(*Discoverer)

// WithAssets sets the filesystem hero image paths are resolved against.
func WithAssets(assets fs.FS) DiscovererOption {
	return func(d *Discoverer) {
		d.assets = assets
	}
}

// WithSchema overrides the frontmatter schema.
func WithSchema(schema validation.Schema) DiscovererOption {
	return func(d *Discoverer) {
		d.schema = schema
	}
}

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger interfaces.Logger) DiscovererOption {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithWorkers bounds how many files are processed concurrently.
func WithWorkers(n int) DiscovererOption {
	return func(d *Discoverer) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithRunIDGenerator overrides the identifier attached to each run's logs.
func WithRunIDGenerator(generator func() uuid.UUID) DiscovererOption {
	return func(d *Discoverer) {
		if generator != nil {
			d.runID = generator
		}
	}
}

// NewDiscoverer builds a Discoverer reading content from files.
func NewDiscoverer(files fs.FS, renderer interfaces.MarkdownRenderer, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		files:    files,
		renderer: renderer,
		schema:   validation.ProjectSchema(),
		logger:   logging.NoOp(),
		workers:  runtime.GOMAXPROCS(0),
		runID:    uuid.New,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// fileResult is the outcome of processing one file.
type fileResult struct {
	record *Record
	err    error
}

// Discover returns a record for every valid content file under root. Files
// that cannot be read, rendered or validated are logged and skipped. The only
// errors returned concern the root itself or a cancelled context.
func (d *Discoverer) Discover(ctx context.Context, root string, opts Options) ([]Record, error) {
	root = cleanRoot(root)
	logger := logging.WithFields(d.logger, map[string]any{
		"run_id": d.runID().String(),
		"root":   root,
	})

	if err := d.checkRoot(root); err != nil {
		logger.Error("content.discover.root_invalid", "error", err)
		return nil, err
	}

	paths, err := d.enumerate(ctx, root, opts, logger)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := d.processFile(p, opts, logger)
			results[i] = fileResult{record: record, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(results))
	seen := map[string]string{}
	for i, result := range results {
		if result.err != nil {
			logger.Warn("content.discover.file_skipped", "path", paths[i], "error", result.err)
			continue
		}
		if previous, dup := seen[result.record.Slug]; dup {
			logger.Warn("content.discover.duplicate_slug", "slug", result.record.Slug, "path", paths[i], "previous", previous)
		}
		seen[result.record.Slug] = paths[i]
		records = append(records, *result.record)
	}

	logger.Info("content.discover.completed", "files", len(paths), "records", len(records), "skipped", len(paths)-len(records))
	return records, nil
}

// Process builds the record for a single file outside a directory walk.
func (d *Discoverer) Process(name string, opts Options) (*Record, error) {
	return d.processFile(cleanRoot(name), opts, d.logger)
}

func (d *Discoverer) checkRoot(root string) error {
	if d.files == nil {
		return &FileProcessingError{Path: root, Cause: fs.ErrNotExist}
	}
	info, err := fs.Stat(d.files, root)
	if err != nil {
		return &FileProcessingError{Path: root, Cause: err}
	}
	if !info.IsDir() {
		return &FileProcessingError{Path: root, Cause: errNotDirectory}
	}
	return nil
}

func (d *Discoverer) enumerate(ctx context.Context, root string, opts Options, logger interfaces.Logger) ([]string, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	recursive := opts.Recursive == nil || *opts.Recursive
	extensions := normalizeExtensions(opts.Extensions)

	var paths []string
	walkErr := fs.WalkDir(d.files, root, func(p string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return &FileProcessingError{Path: p, Cause: err}
			}
			logger.Warn("content.discover.entry_unreadable", "path", p, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if p == root {
			return nil
		}
		if !opts.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if !recursive || depth(root, p) >= maxDepth {
				logger.Debug("content.discover.dir_skipped", "path", p)
				return fs.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}
		if _, ok := extensions[strings.ToLower(path.Ext(p))]; ok {
			paths = append(paths, p)
		}
		return nil
	})
	if walkErr != nil {
		var fileErr *FileProcessingError
		if errors.As(walkErr, &fileErr) {
			return nil, fileErr
		}
		return nil, walkErr
	}
	return paths, nil
}

func (d *Discoverer) processFile(name string, opts Options, logger interfaces.Logger) (*Record, error) {
	fail := func(err error) (*Record, error) {
		return nil, &FileProcessingError{Path: name, Cause: err}
	}

	data, err := fs.ReadFile(d.files, name)
	if err != nil {
		return fail(err)
	}
	if d.renderer == nil {
		return fail(errors.New("no markdown renderer configured"))
	}

	rendered, err := d.renderer.Render(string(data), interfaces.RenderOptions{AllowRawMarkup: opts.AllowRawMarkup})
	if err != nil {
		return fail(err)
	}

	fm, err := validation.Validate(d.schema, rendered.Metadata)
	if err != nil {
		return fail(err)
	}

	slug := slugs.Make(fm.String("slug"))
	if slug == "" {
		slug = slugs.FromFilename(name)
	}
	if slug == "" {
		return fail(errEmptySlug)
	}

	lang := language.Normalize(fm.String("language"))
	fileLogger := logging.WithContentContext(logger, name, lang.String(), slug)

	sum := sha256.Sum256(data)
	record := &Record{
		Slug:         slug,
		FilePath:     name,
		Frontmatter:  fm,
		RawBody:      rendered.Body,
		RenderedHTML: rendered.HTML,
		Language:     lang,
		HeroAlt:      heroAlt(fm),
		Checksum:     hex.EncodeToString(sum[:]),
	}

	if hero := fm.String("heroImage"); hero != "" {
		record.HeroImageValid = d.heroImageExists(hero)
		if !record.HeroImageValid {
			fileLogger.Warn("content.discover.hero_missing", "hero_image", hero)
		}
	}

	fileLogger.Debug("content.discover.file_processed")
	return record, nil
}

// heroImageExists resolves image against the assets filesystem with any
// leading slash removed. Remote URLs and unconfigured assets report false.
func (d *Discoverer) heroImageExists(image string) bool {
	if d.assets == nil {
		return false
	}
	lowered := strings.ToLower(image)
	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") || strings.HasPrefix(image, "//") {
		return false
	}
	name := path.Clean(strings.TrimLeft(image, "/"))
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(d.assets, name)
	return err == nil && !info.IsDir()
}

func cleanRoot(root string) string {
	root = strings.TrimSpace(strings.ReplaceAll(root, "\\", "/"))
	if root == "" {
		return "."
	}
	return path.Clean(strings.TrimPrefix(root, "/"))
}

// depth counts directory levels between root and p. Root is depth 0, so a
// walk with MaxDepth n enters directories down to depth n-1.
func depth(root, p string) int {
	rel := p
	if root != "." {
		rel = strings.TrimPrefix(p, root+"/")
	}
	return strings.Count(rel, "/") + 1
}

func normalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = struct{}{}
	}
	return out
}

// Bool returns a pointer to v for Options.Recursive.
func Bool(v bool) *bool {
	return &v
}
