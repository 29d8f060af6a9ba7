// Package seed derives a profile's reproducible digest and the "dice rolls"
// drawn from it.
package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Length is the number of hex characters in a seed.
const Length = sha256.Size * 2

// Separator joins the trait fields before hashing.
const Separator = "|"

// maxUint32 normalises Uniform draws.
const maxUint32 = 0xffffffff

// ErrOutOfRange is returned when a feature span does not fit in the seed.
var ErrOutOfRange = errors.New("feature span out of range")

// Normalize trims s and lower-cases it with full Unicode case mapping.
// A Caser is not safe for concurrent use, so one is built per call.
func Normalize(s string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(strings.TrimSpace(s)))
}

// Derive computes the seed for a set of traits. Case and surrounding
// whitespace of each field do not affect the result.
func Derive(mainTrait, weakness, talent, dailyGoal, characterName string) string {
	fields := []string{mainTrait, weakness, talent, dailyGoal, characterName}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return Hash(Normalize(strings.Join(fields, Separator)))
}

// Hash returns the lowercase hex SHA-256 digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Feature parses seed[offset:offset+length] as a base-16 integer.
func Feature(seed string, offset, length int) (uint64, error) {
	if offset < 0 || length <= 0 || length > 16 || offset+length > len(seed) {
		return 0, fmt.Errorf("%w: offset %d length %d seed %d", ErrOutOfRange, offset, length, len(seed))
	}
	n, err := strconv.ParseUint(seed[offset:offset+length], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse feature: %w", err)
	}
	return n, nil
}

// MustFeature is Feature for fixed, known-good spans. It panics on a
// malformed seed.
func MustFeature(seed string, offset, length int) uint64 {
	n, err := Feature(seed, offset, length)
	if err != nil {
		panic(fmt.Sprintf("seed: %v", err))
	}
	return n
}

// Uniform returns a reproducible draw in [0, 1] for (seed, salt). Different
// salts give independent draws. 1.0 is returned only when the digest prefix
// is ffffffff; callers turning the draw into an index must clamp.
func Uniform(seed string, salt int) float64 {
	digest := Hash(seed + strconv.Itoa(salt))
	n, _ := strconv.ParseUint(digest[:8], 16, 32)
	return float64(n) / maxUint32
}

// Valid reports whether s looks like a seed produced by Derive.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil && strings.ToLower(s) == s
}
