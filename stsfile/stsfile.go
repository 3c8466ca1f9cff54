// Package stsfile loads Sequence-Tagged Site records from the
// tab-delimited table format of the external interface: one record
// per line, `#`-prefixed and blank lines ignored, fields
//
//	<id>\t<primer1>\t<primer2>\t<size>[\t<annotation>]
//
// where size is either a bare integer or an `a-b` range (the midpoint,
// rounded down, is used). No third-party TSV library in the corpus
// fits a bespoke 4-or-5-column table better than bufio.Scanner and
// strconv, so this loader follows blast.ParseTabular's own style
// rather than reaching for a library: trim whitespace defensively,
// split on tabs, convert numeric fields by hand.
package stsfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/kortschak/epcr/primer"
)

const (
	colID = iota
	colPrimer1
	colPrimer2
	colSize
	colAnnotation
	minFields = colSize + 1
)

// Error reports a malformed line encountered while loading an STS
// table. Load passes lines like this to its badLine callback and skips
// them; it never returns Error itself.
type Error struct {
	Line int
	Text string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stsfile: line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads every STS record from r. Malformed lines are reported to
// badLine (nil is accepted and discards them) and excluded from the
// result; Load itself only fails on an I/O error from the scanner.
func Load(r io.Reader, badLine func(*Error)) ([]*primer.STS, error) {
	var out []*primer.STS
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		s, err := parseLine(line)
		if err != nil {
			if badLine != nil {
				badLine(&Error{Line: lineno, Text: string(line), Err: err})
			}
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("stsfile: read: %w", err)
	}
	return out, nil
}

func parseLine(line []byte) (*primer.STS, error) {
	f := bytes.Split(line, []byte("\t"))
	if len(f) < minFields {
		return nil, fmt.Errorf("expected at least %d tab-separated fields, got %d", minFields, len(f))
	}

	id := string(bytes.TrimSpace(f[colID]))
	if id == "" {
		return nil, fmt.Errorf("empty id")
	}
	p1 := bytes.TrimSpace(f[colPrimer1])
	p2 := bytes.TrimSpace(f[colPrimer2])
	if len(p1) == 0 || len(p2) == 0 {
		return nil, fmt.Errorf("empty primer sequence")
	}

	size, err := parseSize(bytes.TrimSpace(f[colSize]))
	if err != nil {
		return nil, fmt.Errorf("size field: %w", err)
	}

	var annotation string
	if len(f) > colAnnotation {
		annotation = string(bytes.TrimSpace(bytes.Join(f[colAnnotation:], []byte("\t"))))
	}

	return &primer.STS{
		ID:         id,
		Primer1:    append([]byte(nil), p1...),
		Primer2:    append([]byte(nil), p2...),
		PCRSize:    size,
		Annotation: annotation,
	}, nil
}

// parseSize accepts either a bare positive integer or an "a-b" range,
// returning the range's midpoint rounded down.
func parseSize(field []byte) (int, error) {
	if i := bytes.IndexByte(field, '-'); i > 0 {
		lo, err := strconv.Atoi(string(field[:i]))
		if err != nil {
			return 0, err
		}
		hi, err := strconv.Atoi(string(field[i+1:]))
		if err != nil {
			return 0, err
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		return lo + (hi-lo)/2, nil
	}
	n, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, err
	}
	return n, nil
}
