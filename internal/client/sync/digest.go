package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultTimestampTolerance absorbs serialization rounding between the
// server's stored timestamp and what we read back. It is not meant to
// absorb real clock skew.
const DefaultTimestampTolerance = 5 * time.Millisecond

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineEndings rewrites CRLF and lone CR terminators to LF.
func NormalizeLineEndings(text string) string {
	return lineEndingReplacer.Replace(text)
}

// Digest returns the hex sha256 of text with line endings normalized, so
// two copies of a document differing only in line-ending style hash the same.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(NormalizeLineEndings(text)))
	return hex.EncodeToString(sum[:])
}

// TimestampsEqual reports whether a and b refer to the same instant within
// tolerance.
func TimestampsEqual(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
