// Package fs holds the small filesystem helpers shared by the pipeline.
package fs

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// CopyFile copies src to dst on the given filesystem, creating the parent
// directory when needed. An existing dst is truncated; generated names are
// deterministic, so a same-day rerun overwrites the earlier copy.
func CopyFile(fsys afero.Fs, src, dst string) error {
	srcFile, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := fsys.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
