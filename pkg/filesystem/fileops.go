package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// NewOS returns the real filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// WriteFile writes data to name, creating parent directories.
func WriteFile(fs afero.Fs, name string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(name), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory for %s", name)
	}
	if err := afero.WriteFile(fs, name, data, filePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", name)
	}
	return nil
}

// CopyFile copies src to dst byte for byte, creating parent directories.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer in.Close()

	if err := fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory for %s", dst)
	}
	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dst)
	}
	return nil
}

// Move renames src to dst, falling back to copy and remove when a rename
// is not possible (for example across devices). A missing src is reported
// with ErrNotFound so callers can tell an earlier move from a failure.
func Move(fs afero.Fs, src, dst string) error {
	if _, err := fs.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrNotFound, "%s no longer exists", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
	}
	if err := fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrRelocate, "cannot create directory for %s", dst)
	}

	if err := fs.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(fs, src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrRelocate, "cannot move %s to %s", src, dst)
	}
	if err := fs.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrRelocate, "copied %s but cannot remove it", src)
	}
	return nil
}
