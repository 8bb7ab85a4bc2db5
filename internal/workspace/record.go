package workspace

import (
	"strconv"
	"strings"

	"github.com/fgrehm/codejump/internal/editor"
	"github.com/fgrehm/codejump/internal/vscodeuri"
)

// Form distinguishes opened folders from saved .code-workspace files.
type Form int

const (
	FormFolder Form = iota
	FormWorkspace
)

func (f Form) String() string {
	if f == FormWorkspace {
		return "workspace"
	}
	return "folder"
}

// MarshalText encodes the form by name.
func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Record is a normalized workspace reference. Records are values: derive
// modified copies with the With* methods instead of mutating shared ones.
type Record struct {
	// Path is the URI exactly as recorded, not decoded.
	Path string `json:"path"`
	// RelativePath is the decoded path component of the URI.
	RelativePath string `json:"relativePath"`
	// FolderName is the display name. Never empty.
	FolderName string `json:"folderName"`
	// ExtraInfo is the remote machine or WSL distro, if the kind has one.
	ExtraInfo string         `json:"extraInfo,omitempty"`
	Kind      vscodeuri.Kind `json:"kind"`
	// Label is the normalized label recorded by the editor, if any.
	Label    string          `json:"label,omitempty"`
	Form     Form            `json:"form"`
	Instance editor.Instance `json:"instance"`
}

// NewRecord classifies uri and builds a folder Record owned by inst.
// It returns false when uri is not a workspace location.
func NewRecord(uri string, inst editor.Instance) (Record, bool) {
	c, ok := vscodeuri.Classify(uri)
	if !ok {
		return Record{}, false
	}

	name := vscodeuri.FolderName(c.Path)
	if name == "" {
		name = c.Machine
	}
	if name == "" {
		name = c.Kind.String()
	}

	return Record{
		Path:         uri,
		RelativePath: c.Path,
		FolderName:   name,
		ExtraInfo:    c.Machine,
		Kind:         c.Kind,
		Form:         FormFolder,
		Instance:     inst,
	}, true
}

// WithLabel returns a copy of r carrying label.
func (r Record) WithLabel(label string) Record {
	r.Label = label
	return r
}

// WithForm returns a copy of r with the given form.
func (r Record) WithForm(form Form) Record {
	r.Form = form
	return r
}

// Key is the de-duplication identity: the decoded path compared
// case-insensitively, plus the kind and the owning instance.
func (r Record) Key() string {
	return strings.ToLower(vscodeuri.Unescape(r.Path)) +
		"\x00" + strconv.Itoa(int(r.Kind)) +
		"\x00" + r.Instance.Key()
}

// Equal reports whether r and other identify the same workspace.
func (r Record) Equal(other Record) bool {
	return r.Key() == other.Key()
}

// Dedupe drops records whose Key was already seen, keeping first-seen
// order. When a later duplicate has a label and the kept record does not,
// the kept record is replaced by a labeled copy.
func Dedupe(records []Record) []Record {
	index := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if i, ok := index[k]; ok {
			if out[i].Label == "" && r.Label != "" {
				out[i] = out[i].WithLabel(r.Label)
			}
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}
