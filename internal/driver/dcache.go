package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"uwscript/internal/diag"
	"uwscript/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки скриптов по cacheKey на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DepRecord: подключённый через call файл и его хеш на момент проверки.
type DepRecord struct {
	Path string
	Hash Digest
}

type CachedNote struct {
	File  string
	Start uint32
	End   uint32
	Msg   string
}

// CachedDiagnostic: диагностика без FileID: файл записан путём.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	File     string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// DiskPayload stores the outcome of checking one script.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Deps        []DepRecord
	Diagnostics []CachedDiagnostic
	Broken      bool // есть ошибки
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// fresh reports whether every dependency still hashes to the recorded value.
func (p *DiskPayload) fresh() bool {
	for _, dep := range p.Deps {
		h, err := hashFile(dep.Path)
		if err != nil || h != dep.Hash {
			return false
		}
	}
	return true
}

// checkToDiskPayload converts a finished check to DiskPayload. ok == false
// means the result must not be cached: remote calls or failed loads make it
// depend on more than the files on disk.
func checkToDiskPayload(res *ParseResult) (payload *DiskPayload, ok bool) {
	for _, d := range res.Bag.Items() {
		switch d.Code {
		case diag.IOLoadFileError, diag.IOFetchError:
			return nil, false
		}
	}
	root, err := source.AbsolutePath(res.File.Path)
	if err != nil {
		return nil, false
	}
	targets, remote := includedDeps(root, res.Included)
	if remote {
		return nil, false
	}

	payload = &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.File.Path,
		Broken: res.HasErrors(),
	}
	for _, t := range targets {
		h, err := hashFile(t)
		if err != nil {
			return nil, false
		}
		payload.Deps = append(payload.Deps, DepRecord{Path: t, Hash: h})
	}

	fs := res.FileSet
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			File:     fs.Get(d.Primary.File).Path,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{
				File:  fs.Get(n.Span.File).Path,
				Start: n.Span.Start,
				End:   n.Span.End,
				Msg:   n.Msg,
			})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload, true
}

// diskPayloadToBag rebuilds diagnostics over a fresh FileSet. Files are
// loaded from disk again so spans can be rendered.
func diskPayloadToBag(payload *DiskPayload, maxDiagnostics int) (*source.FileSet, *diag.Bag, error) {
	fs := source.NewFileSet()
	ids := make(map[string]source.FileID)
	load := func(path string) (source.FileID, error) {
		if id, ok := ids[path]; ok {
			return id, nil
		}
		id, err := fs.Load(path)
		if err != nil {
			return 0, err
		}
		ids[path] = id
		return id, nil
	}
	if _, err := load(payload.Path); err != nil {
		return nil, nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		id, err := load(cd.File)
		if err != nil {
			return nil, nil, err
		}
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: id, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			nid, err := load(n.File)
			if err != nil {
				return nil, nil, err
			}
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: nid, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	return fs, bag, nil
}
