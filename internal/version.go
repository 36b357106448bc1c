// Package internal holds metadata shared by the merklelib executables.
package internal

// Version is the current release of the merklelib tools.
const Version = "1.0.0"
