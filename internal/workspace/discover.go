package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/history"
)

// Options controls a discovery pass.
type Options struct {
	// IncludeDiscovered enables reading each instance's recent lists.
	// Pinned URIs are always included.
	IncludeDiscovered bool
	// DefaultInstance owns pinned URIs.
	DefaultInstance editor.Instance
	// Exclude holds path patterns (dockerignore syntax, case-insensitive)
	// matched against each record's RelativePath.
	Exclude []string
}

// Discoverer aggregates workspace records from every instance's sources.
type Discoverer struct {
	sources []Source
	logger  *slog.Logger
}

// NewDiscoverer creates a Discoverer. With no sources it uses DefaultSources.
func NewDiscoverer(logger *slog.Logger, sources ...Source) *Discoverer {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Discoverer{sources: sources, logger: logger}
}

// Discover classifies pinned URIs and, when enabled, every URI the instances
// recorded, then de-duplicates the result keeping first-seen order. Pinned
// URIs come first. A failing source is logged and skipped; it never prevents
// other sources or instances from contributing. The only error returned is
// for invalid exclude patterns.
func (d *Discoverer) Discover(ctx context.Context, instances []editor.Instance, pinned []string, opts Options) ([]Record, error) {
	excluder, err := newExcluder(opts.Exclude)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, uri := range pinned {
		if rec, ok := NewRecord(uri, opts.DefaultInstance); ok {
			records = append(records, rec)
		} else {
			d.logger.Debug("skipping unrecognized pinned workspace", "uri", uri)
		}
	}

	if opts.IncludeDiscovered {
		for _, inst := range instances {
			records = append(records, d.discoverInstance(ctx, inst)...)
		}
	}

	if excluder != nil {
		kept := records[:0]
		for _, rec := range records {
			if excluder.excludes(rec.RelativePath) {
				d.logger.Debug("excluding workspace", "path", rec.Path)
				continue
			}
			kept = append(kept, rec)
		}
		records = kept
	}

	return Dedupe(records), nil
}

func (d *Discoverer) discoverInstance(ctx context.Context, inst editor.Instance) []Record {
	var records []Record
	for _, src := range d.sources {
		entries, err := src.Read(ctx, inst)
		if err != nil {
			attrs := []any{"source", src.Name(), "instance", inst.Version, "error", err}
			var derr *editor.DeserializationError
			if errors.As(err, &derr) {
				attrs = append(attrs, "path", derr.Path)
			}
			d.logger.Warn("workspace source failed, skipping", attrs...)
			continue
		}
		for _, e := range entries {
			rec, ok := recordFromEntry(e, inst)
			if !ok {
				continue
			}
			records = append(records, rec)
		}
	}
	return records
}

func recordFromEntry(e history.Entry, inst editor.Instance) (Record, bool) {
	rec, ok := NewRecord(e.URI, inst)
	if !ok {
		return Record{}, false
	}
	if e.IsWorkspaceConfig() {
		rec = rec.WithForm(FormWorkspace)
	}
	if e.Label != "" {
		rec = rec.WithLabel(e.Label)
	}
	return rec, true
}

type excluder struct {
	matcher *patternmatcher.PatternMatcher
}

func newExcluder(patterns []string) (*excluder, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		negate := strings.HasPrefix(p, "!")
		p = normalizePath(strings.TrimPrefix(p, "!"))
		if negate {
			p = "!" + p
		}
		normalized = append(normalized, p)
	}
	if len(normalized) == 0 {
		return nil, nil
	}
	m, err := patternmatcher.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}
	return &excluder{matcher: m}, nil
}

func (e *excluder) excludes(path string) bool {
	match, err := e.matcher.MatchesOrParentMatches(normalizePath(path))
	return err == nil && match
}

// normalizePath makes workspace paths and patterns comparable: lower case,
// no leading separator, OS separators.
func normalizePath(p string) string {
	p = strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
	return filepath.FromSlash(strings.TrimLeft(p, "/"))
}
