package tpchdal

import (
	"os"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
)

const TempFileSuffix = ".tmp"

// WriteViaTempFile runs writeFunc against a temporary path next to destPath
// and renames it into place only once writeFunc succeeds. On failure the
// temporary file is removed and destPath is left as it was.
func WriteViaTempFile(fs gofs.Fs, destPath string, writeFunc func(tempPath string) errorsx.Error) errorsx.Error {
	tempPath := destPath + TempFileSuffix

	err := writeFunc(tempPath)
	if err != nil {
		removeErr := fs.Remove(tempPath)
		if removeErr != nil && !os.IsNotExist(removeErr) {
			return errorsx.Wrap(err, "temp file cleanup error", removeErr.Error())
		}
		return err
	}

	renameErr := fs.Rename(tempPath, destPath)
	if renameErr != nil {
		fs.Remove(tempPath)
		return errorsx.Wrap(ErrDestinationWrite, "path", destPath, "cause", renameErr.Error())
	}

	return nil
}
