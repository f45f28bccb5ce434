package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/factoryfloor/pkg/floor"
)

type snapshot struct {
	Size      int             `json:"size"`
	Positions [][]floor.Block `json:"positions"`
}

// WriteJSON encodes f as an indented JSON snapshot and writes it to w.
func WriteJSON(f *floor.Floor, w io.Writer) error {
	out := snapshot{Size: f.Size(), Positions: f.Stacks()}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the compact snapshot of f.
func MarshalJSON(f *floor.Floor) ([]byte, error) {
	return json.Marshal(snapshot{Size: f.Size(), Positions: f.Stacks()})
}

// ExportJSON writes a snapshot of f to the file at path.
func ExportJSON(f *floor.Floor, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteJSON(f, out)
}
