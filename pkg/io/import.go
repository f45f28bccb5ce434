package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
	"github.com/matzehuels/factoryfloor/pkg/floor"
)

// ReadJSON decodes a snapshot from r and rebuilds the floor.
//
// ReadJSON returns an INVALID_ARGUMENT error if the size does not match the
// number of positions or the piles do not hold every block exactly once.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*floor.Floor, error) {
	var data snapshot
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Size != len(data.Positions) {
		return nil, ferrors.New(ferrors.ErrCodeInvalidArgument, "size %d does not match %d positions", data.Size, len(data.Positions))
	}
	f, err := floor.FromStacks(data.Positions)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return f, nil
}

// UnmarshalJSON is ReadJSON over a byte slice.
func UnmarshalJSON(data []byte) (*floor.Floor, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a snapshot from the file at path.
func ImportJSON(path string) (*floor.Floor, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	return ReadJSON(in)
}
