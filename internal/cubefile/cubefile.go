// Package cubefile saves and loads a Cube as a pair of local files: a
// .bcf payload and a .json metadata sidecar, the way the teacher's save
// package pairs game state with a JSON save file.
package cubefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voxelcore/cube/internal/bcf"
	"github.com/voxelcore/cube/internal/cube"
)

// FormatVersion is written into every sidecar this package produces.
const FormatVersion = "1.0"

// Meta describes a saved Cube independent of its binary payload, so
// callers can inspect a cube file without decoding the whole tree.
type Meta struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	RootDepth uint32 `json:"rootDepth"`
	Materials int    `json:"materialCount"`
}

// Store reads and writes cube files under a single base directory,
// mirroring the teacher's save manager's single saveDir root.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir, creating it if necessary.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("cubefile: failed to create store directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) payloadPath(name string) string {
	return filepath.Join(s.baseDir, name+".bcf")
}

func (s *Store) metaPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save encodes root as BCF and writes it alongside a metadata sidecar
// describing it, both named after name.
func (s *Store) Save(name string, root *cube.Cube, rootDepth uint32) error {
	payload := bcf.Encode(root)
	if err := os.WriteFile(s.payloadPath(name), payload, 0o644); err != nil {
		return fmt.Errorf("cubefile: failed to write payload: %w", err)
	}

	meta := Meta{
		Version:   FormatVersion,
		Timestamp: time.Now().Unix(),
		RootDepth: rootDepth,
		Materials: countMaterials(root),
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("cubefile: failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath(name), metaJSON, 0o644); err != nil {
		return fmt.Errorf("cubefile: failed to write metadata: %w", err)
	}
	return nil
}

// Load reads name's BCF payload and decodes it into a Cube, along with
// its metadata sidecar.
func (s *Store) Load(name string) (*cube.Cube, Meta, error) {
	metaJSON, err := os.ReadFile(s.metaPath(name))
	if err != nil {
		return nil, Meta{}, fmt.Errorf("cubefile: failed to read metadata: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, Meta{}, fmt.Errorf("cubefile: failed to parse metadata: %w", err)
	}

	payload, err := os.ReadFile(s.payloadPath(name))
	if err != nil {
		return nil, Meta{}, fmt.Errorf("cubefile: failed to read payload: %w", err)
	}
	root, err := bcf.Decode(payload)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("cubefile: failed to decode payload: %w", err)
	}
	return root, meta, nil
}

// Exists reports whether name has both a payload and a metadata sidecar.
func (s *Store) Exists(name string) bool {
	if _, err := os.Stat(s.payloadPath(name)); err != nil {
		return false
	}
	_, err := os.Stat(s.metaPath(name))
	return err == nil
}

// Delete removes name's payload and metadata sidecar, ignoring either
// that is already absent.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.payloadPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cubefile: failed to delete payload: %w", err)
	}
	if err := os.Remove(s.metaPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cubefile: failed to delete metadata: %w", err)
	}
	return nil
}

// List returns the names of cube files present in the store, derived
// from their metadata sidecars.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("cubefile: failed to list store: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(".json")])
	}
	return names, nil
}

func countMaterials(c *cube.Cube) int {
	seen := map[uint8]bool{}
	var walk func(*cube.Cube)
	walk = func(n *cube.Cube) {
		if m, ok := n.IsSolid(); ok {
			seen[m] = true
			return
		}
		kids, _ := n.IsInterior()
		for _, k := range kids {
			walk(k)
		}
	}
	walk(c)
	return len(seen)
}
