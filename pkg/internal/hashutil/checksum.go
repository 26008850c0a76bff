package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/dotman/pkg/types"
)

// Checksum returns the SHA256 digest of data as "sha256:<hex>"
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// FileChecksum reads path through fs and returns its checksum
func FileChecksum(fs types.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Checksum(data), nil
}
