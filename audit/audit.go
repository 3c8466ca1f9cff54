// Package audit persists scan hits to an embedded key-value store for
// later inspection, the same role internal/store/store.go and
// cmd/audit-ins-db/audit.go play for the teacher's BLAST hit stores,
// re-keyed here for STS hits instead of BLAST records.
package audit

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"modernc.org/kv"

	"github.com/kortschak/epcr/scan"
)

var order = binary.BigEndian

// Record is the JSON-encoded, snappy-compressed value stored for
// every hit, kept alongside the key purely for correctness auditing
// the way the teacher keeps a BLAST record next to its own key.
type Record struct {
	Target     string
	Start      int
	End        int
	STSID      string
	Annotation string
	Strand     string
}

// Sink persists hits to a kv-backed audit database.
type Sink struct {
	db *kv.DB
}

// Create makes a new, empty audit database at path.
func Create(path string) (*Sink, error) {
	opts := &kv.Options{Compare: ByHitKey}
	db, err := kv.Create(path, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: create %s: %w", path, err)
	}
	return &Sink{db: db}, nil
}

// Open opens an existing audit database at path for reading or
// appending.
func Open(path string) (*Sink, error) {
	opts := &kv.Options{Compare: ByHitKey}
	db, err := kv.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	return &Sink{db: db}, nil
}

// Write persists hits, batching sets into transactions of 100 the
// same way runBlastTabular commits its forward.db writes.
func (s *Sink) Write(hits []scan.Hit) error {
	const batch = 100
	for i, h := range hits {
		if i%batch == 0 {
			if err := s.db.BeginTransaction(); err != nil {
				return fmt.Errorf("audit: begin transaction: %w", err)
			}
		}
		key := MarshalHitKey(h)
		value, err := json.Marshal(Record{
			Target:     h.Target,
			Start:      h.Start,
			End:        h.End,
			STSID:      h.STS.ID,
			Annotation: h.STS.Annotation,
			Strand:     h.Strand.String(),
		})
		if err != nil {
			return fmt.Errorf("audit: marshal record: %w", err)
		}
		if err := s.db.Set(key, snappy.Encode(nil, value)); err != nil {
			return fmt.Errorf("audit: set: %w", err)
		}
		if i%batch == batch-1 || i == len(hits)-1 {
			if err := s.db.Commit(); err != nil {
				return fmt.Errorf("audit: commit transaction: %w", err)
			}
		}
	}
	return nil
}

// Each iterates every persisted record in key order, invoking fn for
// each. It stops and returns the error from fn, if any.
func (s *Sink) Each(fn func(scan.Key, Record) error) error {
	it, err := s.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("audit: seek first: %w", err)
	}
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("audit: iterate: %w", err)
		}
		raw, err := snappy.Decode(nil, v)
		if err != nil {
			return fmt.Errorf("audit: decompress: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("audit: unmarshal record: %w", err)
		}
		if err := fn(UnmarshalHitKey(k), rec); err != nil {
			return err
		}
	}
}

// Close closes the underlying database.
func (s *Sink) Close() error {
	return s.db.Close()
}

// ByHitKey is a kv compare function ordering audit records the same
// way partition.Dedup orders hits: by target, start, end, STS id and
// strand.
func ByHitKey(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	kx, ky := UnmarshalHitKey(x), UnmarshalHitKey(y)
	switch {
	case kx.Target < ky.Target:
		return -1
	case kx.Target > ky.Target:
		return 1
	}
	switch {
	case kx.Start < ky.Start:
		return -1
	case kx.Start > ky.Start:
		return 1
	}
	switch {
	case kx.End < ky.End:
		return -1
	case kx.End > ky.End:
		return 1
	}
	switch {
	case kx.STSID < ky.STSID:
		return -1
	case kx.STSID > ky.STSID:
		return 1
	}
	switch {
	case kx.Strand < ky.Strand:
		return -1
	case kx.Strand > ky.Strand:
		return 1
	}
	panic("unreachable")
}

// MarshalHitKey encodes a hit's identity tuple as a byte-ordered key,
// following MarshalBlastRecordKey's length-prefixed string encoding.
func MarshalHitKey(h scan.Hit) []byte {
	var (
		buf bytes.Buffer
		b   [8]byte
	)
	order.PutUint64(b[:], uint64(len(h.Target)))
	buf.Write(b[:])
	buf.WriteString(h.Target)
	order.PutUint64(b[:], uint64(h.Start))
	buf.Write(b[:])
	order.PutUint64(b[:], uint64(h.End))
	buf.Write(b[:])
	order.PutUint64(b[:], uint64(len(h.STS.ID)))
	buf.Write(b[:])
	buf.WriteString(h.STS.ID)
	buf.WriteByte(byte(h.Strand))
	return buf.Bytes()
}

// UnmarshalHitKey reverses MarshalHitKey.
func UnmarshalHitKey(data []byte) scan.Key {
	var k scan.Key
	n64 := 8
	n := order.Uint64(data[:n64])
	data = data[n64:]
	k.Target = string(data[:n])
	data = data[n:]
	k.Start = int(order.Uint64(data[:n64]))
	data = data[n64:]
	k.End = int(order.Uint64(data[:n64]))
	data = data[n64:]
	n = order.Uint64(data[:n64])
	data = data[n64:]
	k.STSID = string(data[:n])
	data = data[n:]
	k.Strand = scan.Strand(data[0])
	return k
}
