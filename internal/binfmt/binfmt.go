// Package binfmt reads and writes precompiled programs (.uwsl files).
//
// Layout: 4-byte magic "UWSL", big-endian uint16 schema version, then the
// msgpack encoding of ast.Program.
package binfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"uwscript/internal/ast"
)

// SchemaVersion must be incremented whenever the ast layout changes.
const SchemaVersion uint16 = 1

var magic = [4]byte{'U', 'W', 'S', 'L'}

const headerLen = len(magic) + 2

var (
	// ErrBadMagic is returned for data that is not a precompiled program.
	ErrBadMagic = errors.New("not a precompiled program")
	// ErrSchema is returned for programs written by an incompatible version.
	ErrSchema = errors.New("unsupported program schema")
)

// Serialize encodes prog.
func Serialize(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	var ver [2]byte
	binary.BigEndian.PutUint16(ver[:], SchemaVersion)
	buf.Write(ver[:])

	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(prog); err != nil {
		return nil, fmt.Errorf("encode program: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes data written by Serialize.
func Deserialize(data []byte) (*ast.Program, error) {
	if len(data) < headerLen || !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, ErrBadMagic
	}
	if v := binary.BigEndian.Uint16(data[len(magic):headerLen]); v != SchemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSchema, v, SchemaVersion)
	}
	var prog ast.Program
	dec := msgpack.NewDecoder(bytes.NewReader(data[headerLen:]))
	if err := dec.Decode(&prog); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	return &prog, nil
}

// Load reads a .uwsl file.
func Load(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	return os.ReadFile(path)
}

// Save writes data to path atomically: a temp file in the same directory
// is renamed over the target.
func Save(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".uwsl-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// LoadProgram is Load followed by Deserialize.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	prog, err := Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// SaveProgram is Serialize followed by Save.
func SaveProgram(path string, prog *ast.Program) error {
	data, err := Serialize(prog)
	if err != nil {
		return err
	}
	return Save(path, data)
}
