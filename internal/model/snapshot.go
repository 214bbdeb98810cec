package model

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeSnapshot reads a YAML page snapshot. Elements without an ID are
// numbered.
func DecodeSnapshot(r io.Reader) (*Page, error) {
	var p Page
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	p.Number()
	return &p, nil
}

// EncodeSnapshot writes p as YAML.
func EncodeSnapshot(w io.Writer, p *Page) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// LoadSnapshot reads a snapshot file from disk.
func LoadSnapshot(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return DecodeSnapshot(bytes.NewReader(data))
}

// SaveSnapshot writes p to path.
func SaveSnapshot(path string, p *Page) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, p); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
