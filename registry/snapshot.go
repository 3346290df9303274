package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lexcodex/featurekit/framework"
)

// DefaultSnapshotPath is where Save writes when no path is given.
const DefaultSnapshotPath = "config.json"

// ConfigSnapshot is the persisted form of a Registry.
type ConfigSnapshot struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Features    []string `json:"features"`
	LastUpdated string   `json:"last_updated"`
}

// Snapshot captures the current state stamped with the clock's time.
func (r *Registry) Snapshot() ConfigSnapshot {
	return ConfigSnapshot{
		Name:        r.name,
		Version:     r.version,
		Features:    r.Features(),
		LastUpdated: framework.FormatTime(r.clock()),
	}
}

// Encode writes the snapshot as 2-space indented JSON. Non-ASCII and HTML
// characters are written literally.
func (r *Registry) Encode(w io.Writer) error {
	return encodeSnapshot(w, r.Snapshot())
}

func encodeSnapshot(w io.Writer, snap ConfigSnapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return err
	}
	// Encoder always terminates with a newline; the snapshot file does not.
	out := unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	_, err := w.Write(out)
	return err
}

// unescapeLineSeparators restores U+2028 and U+2029, which encoding/json
// escapes unconditionally. An escaped backslash followed by "u2028" is left
// alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if esc := data[i+1:]; len(esc) >= 5 && esc[0] == 'u' {
			switch string(esc[1:5]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteSnapshot writes the snapshot to path, replacing any existing file.
// Failures wrap framework.ErrIOFailure.
func (r *Registry) WriteSnapshot(path string) (err error) {
	if path == "" {
		path = DefaultSnapshotPath
	}
	f, err := os.Create(path)
	if err != nil {
		return &framework.PathError{Op: "create", Path: path, Kind: framework.ErrIOFailure, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &framework.PathError{Op: "close", Path: path, Kind: framework.ErrIOFailure, Err: cerr}
		}
	}()
	if err := r.Encode(f); err != nil {
		return &framework.PathError{Op: "write", Path: path, Kind: framework.ErrIOFailure, Err: err}
	}
	return nil
}

// Save persists the snapshot to path (DefaultSnapshotPath when empty) and
// reports success. Failures are logged, never returned.
func (r *Registry) Save(path string) bool {
	if path == "" {
		path = DefaultSnapshotPath
	}
	if err := r.WriteSnapshot(path); err != nil {
		r.logger.Error("error saving configuration", slog.String("path", path), slog.Any("err", err))
		framework.Emit(r.telemetry, framework.Event{Type: framework.EventSnapshotFailed, Subject: path, Message: err.Error(), Timestamp: r.clock()})
		return false
	}
	r.logger.Info("configuration saved", slog.String("path", path))
	framework.Emit(r.telemetry, framework.Event{
		Type:      framework.EventSnapshotSaved,
		Subject:   path,
		Timestamp: r.clock(),
		Metadata:  map[string]interface{}{"features": len(r.features)},
	})
	return true
}

// LoadSnapshot reads a snapshot written by Save. A missing file wraps
// framework.ErrNotFound; unreadable or malformed content wraps
// framework.ErrIOFailure.
func LoadSnapshot(path string) (ConfigSnapshot, error) {
	if path == "" {
		path = DefaultSnapshotPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigSnapshot{}, framework.NewPathError("read", path, err)
	}
	var snap ConfigSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ConfigSnapshot{}, &framework.PathError{Op: "decode", Path: path, Kind: framework.ErrIOFailure, Err: err}
	}
	if snap.Name == "" {
		return ConfigSnapshot{}, &framework.PathError{Op: "decode", Path: path, Kind: framework.ErrIOFailure, Err: errors.New("snapshot has no name")}
	}
	return snap, nil
}

// FromSnapshot rebuilds a Registry whose features are exactly the
// snapshot's, deduplicated in order. The version option is taken from the
// snapshot; other options still apply.
func FromSnapshot(snap ConfigSnapshot, opts ...Option) (*Registry, error) {
	opts = append(opts, WithVersion(snap.Version))
	r, err := New(snap.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	r.features = make([]string, 0, len(snap.Features))
	r.index = make(map[string]struct{}, len(snap.Features))
	for _, f := range snap.Features {
		r.appendFeature(f)
	}
	return r, nil
}
