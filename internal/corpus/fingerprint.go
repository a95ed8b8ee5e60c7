package corpus

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint hashes the identity of every .txt file in dir: name, size and
// modification time, sorted by name. Any added, removed, resized or touched
// file changes the result. The hash is md5 over the joined identity strings;
// it only needs to be collision-resistant enough for change detection.
func Fingerprint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
		parts = append(parts, name+"_"+strconv.FormatInt(info.Size(), 10)+"_"+strconv.FormatInt(info.ModTime().UnixNano(), 10))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:]), nil
}

// LoadBaseline reads the previously persisted fingerprint. A missing file is
// not an error: it returns the empty string, which never matches a computed
// fingerprint.
func LoadBaseline(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveBaseline persists the fingerprint as the new baseline. Call this only
// after the collection has actually been rebuilt, otherwise a later check
// would wrongly report the corpus as unchanged.
func SaveBaseline(path, fingerprint string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fingerprint), 0o644)
}

// Changed reports whether current and stored differ. An empty value on either
// side counts as changed, so enumeration failures fail safe toward reindexing.
func Changed(current, stored string) bool {
	return current == "" || stored == "" || current != stored
}
