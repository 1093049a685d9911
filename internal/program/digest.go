package program

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/eggir/internal/ast"
)

// DomainProgram prefixes program digests. The version suffix allows the
// encoding to change without colliding with old digests.
const DomainProgram = "eggir/program/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the content address of a program.
func Digest(cmds []ast.Command) (string, error) {
	canonical, err := MarshalCanonical(cmds)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}
