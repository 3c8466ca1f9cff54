package scan

import "github.com/kortschak/epcr/primer"

// Strand is the physical strand a Hit was found on.
type Strand byte

const (
	Plus  Strand = iota // STS matches the target as given
	Minus               // STS matches the target's reverse complement
)

// String returns the strand symbol used in report output.
func (s Strand) String() string {
	if s == Plus {
		return "+"
	}
	return "-"
}

// Hit is a verified match of an STS's primer pair in a target
// sequence, at a spacing consistent with its declared amplicon size
// (spec §3).
type Hit struct {
	Target string // owning target label
	Start  int    // 1-based, inclusive
	End    int    // 1-based, inclusive
	STS    *primer.STS
	Strand Strand
}

// Key is the 5-tuple that determines hit identity (spec §3): two hits
// are the same iff target, start, end, STS id and strand all agree.
type Key struct {
	Target       string
	Start, End   int
	STSID        string
	Strand       Strand
}

// Key returns h's identity tuple.
func (h Hit) Key() Key {
	return Key{Target: h.Target, Start: h.Start, End: h.End, STSID: h.STS.ID, Strand: h.Strand}
}
