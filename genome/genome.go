// Package genome loads FASTA target sequences, following
// cmd/ins/main.go and fragment.go's use of biogo's FASTA reader and
// fai indexer for its own query traffic.
package genome

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/hts/fai"
	"github.com/edsrzf/mmap-go"
)

// Record is one loaded FASTA sequence: a label (the first
// whitespace-delimited token after '>') and its raw bases.
type Record struct {
	Label string
	Seq   []byte
}

// LoadFASTA reads every record from r. Header description text beyond
// the label is discarded; payload lines are concatenated by the
// underlying reader exactly as biogo's linear.Seq accumulates them.
func LoadFASTA(r io.Reader) ([]Record, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	var out []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return out, fmt.Errorf("genome: unexpected sequence type %T", sc.Seq())
		}
		b := make([]byte, s.Len())
		for i := range b {
			b[i] = byte(s.Seq[i])
		}
		out = append(out, Record{Label: s.ID, Seq: b})
	}
	if err := sc.Error(); err != nil {
		return out, fmt.Errorf("genome: read: %w", err)
	}
	return out, nil
}

// Mapped is a memory-mapped FASTA file, avoiding a full read into the
// process heap for multi-gigabyte single-record targets.
type Mapped struct {
	f    *os.File
	data mmap.MMap
}

// OpenMapped memory-maps path for reading.
func OpenMapped(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genome: open %s: %w", path, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("genome: mmap %s: %w", path, err)
	}
	return &Mapped{f: f, data: data}, nil
}

// Records parses every FASTA record out of the mapped bytes without
// copying the underlying file into a fresh buffer first.
func (m *Mapped) Records() ([]Record, error) {
	return LoadFASTA(bytes.NewReader(m.data))
}

// Close unmaps the file and closes its descriptor.
func (m *Mapped) Close() error {
	uerr := m.data.Unmap()
	cerr := m.f.Close()
	if uerr != nil {
		return uerr
	}
	return cerr
}

// Indexed provides random access into a FASTA file that already has,
// or can have built, a ".fai" index, the same index cmd/ins builds
// before splitting its query.
type Indexed struct {
	f   *os.File
	idx fai.Index
	fa  *fai.File
}

// OpenIndexed opens path and builds (or would load, were it cached)
// its fai index, the same sequence cmd/ins's main.go follows: index
// first, then rewind before reading sequence data.
func OpenIndexed(path string) (*Indexed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genome: open %s: %w", path, err)
	}
	idx, err := fai.NewIndex(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("genome: index %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("genome: rewind %s: %w", path, err)
	}
	return &Indexed{f: f, idx: idx, fa: fai.NewFile(f, idx)}, nil
}

// Range returns the bases of label over [start, end).
func (g *Indexed) Range(label string, start, end int) ([]byte, error) {
	r, err := g.fa.SeqRange(label, start, end)
	if err != nil {
		return nil, fmt.Errorf("genome: range %s:%d-%d: %w", label, start, end, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("genome: read %s:%d-%d: %w", label, start, end, err)
	}
	return b, nil
}

// Close closes the underlying file.
func (g *Indexed) Close() error {
	return g.f.Close()
}
