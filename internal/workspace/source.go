package workspace

import (
	"context"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/history"
)

// Source reads the raw recently-opened entries an instance has recorded.
type Source interface {
	Name() string
	Read(ctx context.Context, inst editor.Instance) ([]history.Entry, error)
}

// LegacySource reads storage.json. Its entries never carry labels.
type LegacySource struct{}

// Name returns the source identifier.
func (LegacySource) Name() string { return "storage.json" }

// Read returns the folder URIs from the instance's storage.json.
func (LegacySource) Read(_ context.Context, inst editor.Instance) ([]history.Entry, error) {
	uris, err := history.ReadLegacy(inst.LegacyStoragePath())
	if err != nil {
		return nil, err
	}
	entries := make([]history.Entry, 0, len(uris))
	for _, uri := range uris {
		entries = append(entries, history.Entry{Kind: history.EntryFolder, URI: uri})
	}
	return entries, nil
}

// StoreSource reads the recently-opened list from state.vscdb.
type StoreSource struct{}

// Name returns the source identifier.
func (StoreSource) Name() string { return "state.vscdb" }

// Read returns the entries from the instance's state.vscdb.
func (StoreSource) Read(ctx context.Context, inst editor.Instance) ([]history.Entry, error) {
	return history.ReadStore(ctx, inst.StatePath())
}

// DefaultSources returns the built-in sources, oldest format first.
func DefaultSources() []Source {
	return []Source{LegacySource{}, StoreSource{}}
}
