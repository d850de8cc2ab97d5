// Package testutil provides testcontainers helpers for integration tests.
package testutil

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// maxDBNamePrefix keeps generated names well under MongoDB's 63 byte limit.
const maxDBNamePrefix = 40

var dbNameSeq atomic.Uint64

// SanitizeDBName turns a test name into a unique MongoDB database name.
// Characters MongoDB rejects become underscores.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, testName)

	if len(name) > maxDBNamePrefix {
		name = name[:maxDBNamePrefix]
	}
	if name == "" {
		name = "test"
	}
	return name + "_" + strconv.FormatUint(dbNameSeq.Add(1), 36)
}
