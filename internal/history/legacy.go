package history

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fgrehm/codejump/internal/editor"
)

// legacyStorage is the subset of storage.json that lists opened paths.
// Editors before 1.55 wrote a flat "workspaces3" list; later ones write
// "entries" objects.
type legacyStorage struct {
	OpenedPathsList *struct {
		Workspaces3 []json.RawMessage `json:"workspaces3"`
		Entries     []struct {
			FolderURI string `json:"folderUri"`
		} `json:"entries"`
	} `json:"openedPathsList"`
}

// ReadLegacy returns the folder URIs recorded in a storage.json file, legacy
// list first. A missing file yields no URIs and no error. Malformed JSON is
// reported as an *editor.DeserializationError.
func ReadLegacy(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var storage legacyStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, &editor.DeserializationError{Path: path, Err: err}
	}
	if storage.OpenedPathsList == nil {
		return nil, nil
	}

	var uris []string
	for _, raw := range storage.OpenedPathsList.Workspaces3 {
		// Saved workspaces show up here as objects; only plain URIs are folders.
		var uri string
		if err := json.Unmarshal(raw, &uri); err != nil || uri == "" {
			continue
		}
		uris = append(uris, uri)
	}
	for _, e := range storage.OpenedPathsList.Entries {
		if e.FolderURI == "" {
			continue
		}
		uris = append(uris, e.FolderURI)
	}
	return uris, nil
}
