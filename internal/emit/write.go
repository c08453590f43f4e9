package emit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// WriteFile writes out to path unless the file already holds output with
// the same fingerprint. It reports whether the file was written.
func WriteFile(path string, out *Output) (bool, error) {
	existing, err := os.ReadFile(path) // #nosec G304 -- output path chosen by the operator
	switch {
	case err == nil:
		if out.Fingerprint != "" && Fingerprint(out.Format, existing) == out.Fingerprint {
			return false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return false, derrors.FileSystemError("read", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, derrors.FileSystemError("mkdir", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out.Bytes(), 0o644); err != nil { // #nosec G306 -- generator config is world readable
		return false, derrors.FileSystemError("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, derrors.FileSystemError("rename", path, fmt.Errorf("replace %s: %w", path, err))
	}
	return true, nil
}

// Fingerprint returns the fingerprint of previously emitted content: the
// recorded header value when present, otherwise one computed from the
// content itself.
func Fingerprint(format Format, content []byte) string {
	if prefix := commentPrefix(format); prefix != "" {
		first, rest, _ := bytes.Cut(content, []byte("\n"))
		marker := prefix + " " + mdfp.FingerprintField + ":"
		if line := string(first); strings.HasPrefix(line, marker) {
			recorded := strings.TrimSpace(strings.TrimPrefix(line, marker))
			// a hand-edited body invalidates the recorded value
			if fingerprint(format, rest) == recorded {
				return recorded
			}
			return ""
		}
	}
	return fingerprint(format, content)
}
