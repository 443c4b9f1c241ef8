package persist

import (
	"os"
	"path/filepath"

	"pkt.systems/pslog"
)

// Writer replaces files atomically through a temp file and rename.
type Writer struct {
	log pslog.Logger
}

// NewWriter constructs a Writer. A nil logger disables logging.
func NewWriter(logger pslog.Logger) *Writer {
	return &Writer{log: logger}
}

// WriteFile writes data to path with perm. Readers never observe a
// partially written file.
func (w *Writer) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := w.writeFile(path, data, perm); err != nil {
		if w.log != nil {
			w.log.Warn("file write failed", "path", path, "err", err)
		}
		return err
	}
	if w.log != nil {
		w.log.Trace("file write ok", "path", path, "bytes", len(data))
	}
	return nil
}

func (w *Writer) writeFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// WriteFile writes data to path atomically without logging.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return NewWriter(nil).WriteFile(path, data, perm)
}
