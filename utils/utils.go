// Package utils provides common utility functions shared by the
// merklelib packages: hexadecimal encoding at the API boundary,
// integer serialization and small file helpers.
package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToHex returns the lowercase hexadecimal encoding of b.
// This is the canonical textual form of hashes at the API boundary.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FromHex decodes a hexadecimal string into raw bytes.
// The decoding is case-insensitive. If s is not a valid hexadecimal
// string, its raw bytes are returned unchanged: callers are allowed
// to pass either form, and all internal comparisons operate on the
// decoded raw bytes.
func FromHex(s string) []byte {
	decoded, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return []byte(s)
	}
	return decoded
}

// IsHex reports whether b holds a valid, non-empty hexadecimal string.
func IsHex(b []byte) bool {
	if len(b) == 0 || len(b)%2 != 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ULongToBytes converts an uint64 variable to a byte array
// in little endian format.
func ULongToBytes(num uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, num)
	return buf
}

// WriteFile writes buf to a file whose path is indicated by filename.
func WriteFile(filename string, buf []byte, perm os.FileMode) error {
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("Can't write file. File '%s' already exists\n",
			filename)
	}
	return os.WriteFile(filename, buf, perm)
}

// ResolvePath returns the absolute path of file.
// This will use other as a base path if file is just a file name.
func ResolvePath(file, other string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(other), file)
	}
	return file
}
