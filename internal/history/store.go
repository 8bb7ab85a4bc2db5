package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fgrehm/codejump/internal/editor"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// RecentKey is the state.vscdb key holding the recently-opened list.
const RecentKey = "history.recentlyOpenedPathsList"

const recentQuery = "SELECT value FROM ItemTable WHERE key = ?"

// storeEntry mirrors one element of the "entries" array. Exactly one of
// FolderURI or Workspace is expected; anything else (e.g. fileUri) is skipped.
type storeEntry struct {
	FolderURI *string `json:"folderUri"`
	Workspace *struct {
		ConfigPath string `json:"configPath"`
	} `json:"workspace"`
	Label string `json:"label"`
}

type recentList struct {
	Entries []storeEntry `json:"entries"`
}

// ReadStore reads the recently-opened list from the state.vscdb at path.
// The database is opened read-only and closed before returning. A missing
// database, table or key yields no entries and no error.
func ReadStore(ctx context.Context, path string) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	value, err := queryRecent(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, nil
	}
	return parseRecent(path, value)
}

func queryRecent(ctx context.Context, path string) ([]byte, error) {
	db, err := sql.Open("sqlite", storeDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	var value []byte
	err = db.QueryRowContext(ctx, recentQuery, RecentKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	return value, nil
}

// storeDSN builds a read-only connection string. The editor may hold the
// database open, so wait briefly on locks instead of failing.
func storeDSN(path string) string {
	q := url.Values{}
	q.Set("mode", "ro")
	q.Add("_pragma", "busy_timeout(2000)")
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: q.Encode()}
	return u.String()
}

// isMissingTable reports whether err comes from a database without ItemTable,
// which happens when the editor has never finished initializing its state.
func isMissingTable(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}

func parseRecent(path string, value []byte) ([]Entry, error) {
	var list recentList
	if err := json.Unmarshal(value, &list); err != nil {
		return nil, &editor.DeserializationError{Path: path + "#" + RecentKey, Err: err}
	}

	entries := make([]Entry, 0, len(list.Entries))
	for _, se := range list.Entries {
		var e Entry
		switch {
		case se.Workspace != nil && se.Workspace.ConfigPath != "":
			e = Entry{Kind: EntryWorkspace, URI: se.Workspace.ConfigPath}
		case se.FolderURI != nil && *se.FolderURI != "":
			e = Entry{Kind: EntryFolder, URI: *se.FolderURI}
		default:
			continue
		}
		if se.Label != "" {
			e.Label = NormalizeLabel(se.Label)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
