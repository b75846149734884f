package ruleset

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Checksum returns the "blake3:<hex>" digest of data, in the form manifests
// carry. The importer stamps this into every bundle it writes.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return "blake3:" + hex.EncodeToString(sum[:])
}

// verifyChecksum checks data against a manifest checksum. An empty spec is
// accepted: the embedded starter bundle ships without digests.
func verifyChecksum(data []byte, spec string) error {
	if spec == "" {
		return nil
	}
	algo, want, ok := strings.Cut(spec, ":")
	if !ok || algo != "blake3" {
		return fmt.Errorf("unsupported checksum %q", spec)
	}
	sum := blake3.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("checksum mismatch: want %s, got %s", want, got)
	}
	return nil
}
