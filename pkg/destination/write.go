package destination

import (
	"os"
	"path/filepath"

	"github.com/apodwall/apodwall/pkg/errors"
)

// Write places data at path atomically: the bytes go to a temporary
// sibling first and are renamed into place after a sync, so the final path
// either holds the complete file or nothing, even across a crash mid-write.
//
// The parent directory is created if missing.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrapFS(err, "create directory %s", dir)
	}

	tmp, err := writeTemp(dir, data)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return wrapFS(err, "rename into %s", path)
	}
	return nil
}

// writeTemp writes data to a temporary file in dir and returns its path.
// On any failure the temporary file is removed.
func writeTemp(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".apodwall-*.tmp")
	if err != nil {
		return "", wrapFS(err, "create temp file in %s", dir)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", wrapFS(err, "write temp file %s", tmp)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", wrapFS(err, "sync temp file %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", wrapFS(err, "close temp file %s", tmp)
	}
	return tmp, nil
}

// wrapFS maps filesystem failures onto the error taxonomy: permission
// problems get their own code, everything else is an IO error.
func wrapFS(err error, format string, args ...any) error {
	code := errors.ErrCodeIO
	if os.IsPermission(err) {
		code = errors.ErrCodePermission
	}
	return errors.Wrap(code, err, format, args...)
}
