package ggicon

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Save composes icon and writes it to path as PNG.
//
// The file is written only after composition and encoding succeed: the
// bytes go to a temporary file next to path which is then renamed over
// it. On error path is left as it was. Saving again to the same path
// replaces the previous image.
func Save(path string, icon Icon, opts ...Option) error {
	r, err := Compose(icon, opts...)
	if err != nil {
		return err
	}
	data, err := r.PNG()
	if err != nil {
		return fmt.Errorf("ggicon: encode png: %w", err)
	}
	return writeFile(path, data)
}

// SaveSVG writes the vector form of icon to path. See EncodeSVG.
func SaveSVG(path string, icon Icon, opts ...Option) error {
	var buf bytes.Buffer
	if err := EncodeSVG(&buf, icon, opts...); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// writeFile atomically replaces path with data.
func writeFile(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("ggicon: write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ggicon: write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("ggicon: write %s: %w", path, err)
	}
	// #nosec G302 -- icons are public assets
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("ggicon: write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ggicon: write %s: %w", path, err)
	}
	Logger().Debug("ggicon: saved", "path", path, "bytes", len(data))
	return nil
}
