package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning wraps every validation failure from LoadTuning.
var ErrInvalidTuning = errors.New("invalid tuning")

// LoadTuning reads a YAML file and overlays it on the current tuning. Keys
// missing from the file keep their current values. Client and server must
// load the same file or their simulations diverge.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}

// ParseTuning overlays YAML data on the current tuning.
func ParseTuning(data []byte) (Tuning, error) {
	t := Current()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Physics.MaxCollisionLoops < 1:
		return fmt.Errorf("%w: maxCollisionLoops must be at least 1", ErrInvalidTuning)
	case t.Physics.MinGap <= 0:
		return fmt.Errorf("%w: minGap must be positive", ErrInvalidTuning)
	case t.Fighter.Width <= 0 || t.Fighter.Height <= 0:
		return fmt.Errorf("%w: fighter size must be positive", ErrInvalidTuning)
	case t.Pistol.Width <= 0 || t.Pistol.Height <= 0:
		return fmt.Errorf("%w: pistol size must be positive", ErrInvalidTuning)
	case t.Bullet.Speed <= 0:
		return fmt.Errorf("%w: bullet speed must be positive", ErrInvalidTuning)
	case t.Net.TickRate <= 0:
		return fmt.Errorf("%w: tickRate must be positive", ErrInvalidTuning)
	case t.Net.SnapshotRetention <= 0:
		return fmt.Errorf("%w: snapshotRetention must be positive", ErrInvalidTuning)
	}
	return nil
}
