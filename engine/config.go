// Package engine is the facade that wires the library, target,
// index, scanner, partitioner and report writer into one run,
// mirroring cmd/ins/main.go's top-level orchestration shape: parse
// configuration, load inputs, search, report, fatal on the first
// unrecoverable error.
package engine

import (
	"fmt"
	"runtime"
)

// Config is the full configuration surface (spec §6).
type Config struct {
	WordSize       int  // W, 3..16
	Margin         int  // M, 0..10000
	Mismatches     int  // N, 0..10
	Protect        int  // X, >=0
	DefaultPCRSize int  // used when an STS omits its amplicon size, 1..10000
	Threads        int  // T, <1 means all cores; forced to 1 for payloads under smallPayloadThreshold
	IUPAC          bool

	ChunkSize int // target partition size handed to one worker

	GFF       bool   // emit GFF instead of the native tabular format
	AuditPath string // when non-empty, persist every hit to this kv store
}

// smallPayloadThreshold is the payload size below which Threads is
// forced to 1 (spec §6: "overridden to 1 for payloads < 100 KB").
const smallPayloadThreshold = 100 * 1024

// effectiveThreads returns the worker count to actually use for a
// target of the given size. Threads <= 0 means use all cores, the
// same convention cmd/ins applies via runtime.NumCPU().
func (c Config) effectiveThreads(targetSize int) int {
	if targetSize < smallPayloadThreshold {
		return 1
	}
	if c.Threads < 1 {
		return runtime.NumCPU()
	}
	return c.Threads
}

// Validate checks c against the ranges of spec §6, independent of any
// loaded library. minPrimerLen, when > 0, is the shortest primer pair
// length found in the loaded library; Validate also rejects a
// WordSize exceeding it there.
func (c Config) Validate(minPrimerLen int) error {
	switch {
	case c.WordSize < 3 || c.WordSize > 16:
		return &ConfigError{Option: "word size", Detail: fmt.Sprintf("%d outside [3,16]", c.WordSize)}
	case c.Margin < 0 || c.Margin > 10000:
		return &ConfigError{Option: "margin", Detail: fmt.Sprintf("%d outside [0,10000]", c.Margin)}
	case c.Mismatches < 0 || c.Mismatches > 10:
		return &ConfigError{Option: "mismatches", Detail: fmt.Sprintf("%d outside [0,10]", c.Mismatches)}
	case c.Protect < 0:
		return &ConfigError{Option: "3' protection", Detail: fmt.Sprintf("%d must be >= 0", c.Protect)}
	case c.DefaultPCRSize < 1 || c.DefaultPCRSize > 10000:
		return &ConfigError{Option: "default PCR size", Detail: fmt.Sprintf("%d outside [1,10000]", c.DefaultPCRSize)}
	}
	if minPrimerLen > 0 && c.WordSize > minPrimerLen {
		return &ConfigError{Option: "word size", Detail: fmt.Sprintf("%d exceeds shortest loaded primer length %d", c.WordSize, minPrimerLen)}
	}
	return nil
}
