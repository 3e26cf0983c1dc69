package driver

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey зависит от содержимого, абсолютного пути (от него считаются call)
// и всех опций, меняющих набор диагностик.
func cacheKey(absPath string, content []byte, opts Options) Digest {
	fingerprint := fmt.Sprintf("%d|%s|%d|%t|%t|%t|%s|%s",
		diskCacheSchemaVersion, absPath, opts.MaxDiagnostics,
		opts.Strict, opts.Explicit, opts.OptPublic,
		opts.DefaultExt, strings.Join(opts.Builtins, ","))
	return combineDigest(sha256.Sum256(content), sha256.Sum256([]byte(fingerprint)))
}

// hashFile читает файл с диска; ошибка значит "зависимость изменилась".
func hashFile(path string) (Digest, error) {
	// #nosec G304 -- paths come from call statements of the checked script
	raw, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(raw), nil
}

// includedDeps отбрасывает из списка включённых скриптов сам root и
// сообщает, был ли среди них URI: такой результат зависит не только от диска.
func includedDeps(root string, included []string) (deps []string, remote bool) {
	for _, loc := range included {
		switch {
		case strings.Contains(loc, "://"):
			remote = true
		case filepath.Clean(loc) != filepath.Clean(root):
			deps = append(deps, filepath.Clean(loc))
		}
	}
	return deps, remote
}
