package primer

import "github.com/kortschak/epcr/nucleic"

// Orientation tags which physical primer a Record uses as its hash
// anchor (Primary): FWD anchors on primer1 itself; REV anchors on the
// reverse complement of primer2. A Record's Orientation also fixes the
// strand reported for any hit it produces: FWD -> "+", REV -> "-".
type Orientation byte

const (
	FWD Orientation = iota
	REV
)

// String returns the strand symbol for o.
func (o Orientation) String() string {
	if o == FWD {
		return "+"
	}
	return "-"
}

// Record is an indexed primer record derived from one STS. Two are
// produced per STS — one per Orientation — each carrying the primer
// pair reordered so that Primary is the sequence hashed into the
// index and Partner is the sequence searched for within the margin
// window around Primary's match (spec §4.2, §4.5).
//
// Primary is always the primer used "as is" in its own 5'->3' sense
// for FWD (primer1) and the reverse complement of primer2 for REV;
// Partner is the other one. This keeps each primer's 3' protection on
// the correct end regardless of which Orientation is driving the
// scan: primer1 is always compared with its 3' end on the right,
// reverse-complemented primer2 always with its 3' end on the left.
type Record struct {
	STS         *STS
	Orientation Orientation
	Primary     []byte
	Partner     []byte
	HashOffset  int
	HashValue   uint64
	Ambiguous   bool
}

// Preprocess derives the FWD and REV Records for every STS in lib
// whose primers are both at least w bases long. STS records failing
// that length invariant are degenerate (spec §3) and returned in
// rejected, unindexed. Records whose Primary has no unambiguous
// w-length window are fully ambiguous (spec §4.3) and returned in
// fallback rather than indexed; the hash index examines fallback at
// every scan position regardless of the rolling hash.
//
// The returned slices preserve the iteration order of lib, so the
// index built from them has deterministic bucket order (spec §4.3).
func Preprocess(lib []*STS, w int) (indexed, fallback []Record, rejected []*STS) {
	for _, s := range lib {
		if len(s.Primer1) < w || len(s.Primer2) < w {
			rejected = append(rejected, s)
			continue
		}

		p2rc := nucleic.ReverseComplement(s.Primer2)

		fwd := buildRecord(s, FWD, s.Primer1, p2rc, w)
		rev := buildRecord(s, REV, p2rc, s.Primer1, w)

		for _, r := range [2]Record{fwd, rev} {
			if r.Ambiguous {
				fallback = append(fallback, r)
			} else {
				indexed = append(indexed, r)
			}
		}
	}
	return indexed, fallback, rejected
}

func buildRecord(s *STS, o Orientation, primary, partner []byte, w int) Record {
	r := Record{STS: s, Orientation: o, Primary: primary, Partner: partner}
	offset, value, ok := hashWindow(primary, w)
	if !ok {
		r.Ambiguous = true
		return r
	}
	r.HashOffset = offset
	r.HashValue = value
	return r
}

// hashWindow returns the leftmost offset in p at which a w-length
// window contains no ambiguous base, along with its encoded 2-bit
// value. ok is false if no such window exists.
func hashWindow(p []byte, w int) (offset int, value uint64, ok bool) {
	for j := 0; j+w <= len(p); j++ {
		if v, ok := encodeWindow(p[j : j+w]); ok {
			return j, v, true
		}
	}
	return 0, 0, false
}

// encodeWindow packs an unambiguous w-length window into a 2-bit-per-
// base integer, most significant base first. It returns ok = false if
// any base in window is ambiguous.
func encodeWindow(window []byte) (value uint64, ok bool) {
	for _, b := range window {
		c := nucleic.Code2(b)
		if c == nucleic.Invalid {
			return 0, false
		}
		value = value<<2 | uint64(c)
	}
	return value, true
}
