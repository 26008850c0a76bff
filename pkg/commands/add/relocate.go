package add

import (
	stderrors "errors"
	"fmt"
	"syscall"

	"github.com/arthur-debert/dotman/pkg/internal/hashutil"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
)

// relocate moves a file. A rename that fails because the two paths are on
// different devices falls back to copy, verify and delete.
func relocate(fs types.FS, from, to string, log zerolog.Logger) error {
	err := fs.Rename(from, to)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return err
	}

	log.Debug().Str("from", from).Str("to", to).Msg("Cross-device rename, copying instead")
	return copyVerifyDelete(fs, from, to)
}

func copyVerifyDelete(fs types.FS, from, to string) error {
	info, err := fs.Stat(from)
	if err != nil {
		return err
	}
	data, err := fs.ReadFile(from)
	if err != nil {
		return err
	}

	if err := fs.WriteFile(to, data, info.Mode().Perm()); err != nil {
		_ = fs.Remove(to)
		return err
	}

	written, err := hashutil.FileChecksum(fs, to)
	if err != nil {
		_ = fs.Remove(to)
		return err
	}
	if want := hashutil.Checksum(data); written != want {
		_ = fs.Remove(to)
		return fmt.Errorf("checksum mismatch after copying %s to %s: %s != %s", from, to, written, want)
	}

	if err := fs.Remove(from); err != nil {
		_ = fs.Remove(to)
		return err
	}
	return nil
}
