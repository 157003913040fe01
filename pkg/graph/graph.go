package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mindgeo/pkg/errors"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// MarshalSnapshot converts a snapshot to indented JSON bytes.
// Node and edge order is preserved.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSnapshotTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot decodes JSON bytes into a snapshot.
// The result is not validated; call [Snapshot.Validate] when input is untrusted.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	return readSnapshotFrom(bytes.NewReader(data))
}

// WriteSnapshotFile writes a snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteSnapshotFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSnapshotTo(s, f)
}

// WriteSnapshot writes a snapshot as JSON to an io.Writer.
func WriteSnapshot(s Snapshot, w io.Writer) error {
	return writeSnapshotTo(s, w)
}

// ReadSnapshotFile reads a JSON file and returns the decoded snapshot.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSnapshotFrom(f)
}

// ReadSnapshot decodes a JSON snapshot from an io.Reader.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	return readSnapshotFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeSnapshotTo(s Snapshot, w io.Writer) error {
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	if s.Edges == nil {
		s.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSnapshotFrom(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	return s, nil
}
