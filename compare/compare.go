// Package compare implements the bounded-mismatch, 3'-protected
// primer comparator (spec §4.4).
package compare

import "github.com/kortschak/epcr/nucleic"

// Direction tags which end of a primer is protected: FWD protects the
// rightmost (3') bases, REV protects the leftmost (3') bases. A
// primer used "as is" (e.g. primer1 in its own 5'->3' sense) is
// always compared with Direction FWD; a reverse-complemented primer
// (e.g. the reverse complement of primer2) is always compared with
// Direction REV, since reverse-complementing flips which end is 3'.
type Direction byte

const (
	FWD Direction = iota
	REV
)

// Opposite returns the other Direction.
func (d Direction) Opposite() Direction {
	if d == FWD {
		return REV
	}
	return FWD
}

// Config holds the comparator's tunable policy.
type Config struct {
	Mismatches int  // N: mismatch budget outside the protected region, 0..10
	Protect    int  // X: exact-match length at the primer's 3' end, >= 0
	IUPAC      bool // enables IUPAC-aware base comparison
}

// Compare reports whether primer p matches target window t (equal
// length byte slices) under cfg and dir. It is side-effect free and
// deterministic (spec §4.4).
//
// The protected region is p's last Protect bases for Direction FWD,
// or its first Protect bases for Direction REV; any mismatch there
// fails the comparison immediately. Outside the protected region,
// mismatches are tallied and the comparison succeeds iff the total is
// at most cfg.Mismatches.
func Compare(p, t []byte, dir Direction, cfg Config) bool {
	if len(p) != len(t) {
		return false
	}
	n := len(p)
	protectFrom, protectTo := protectedRange(n, dir, cfg.Protect)

	mismatches := 0
	for i := 0; i < n; i++ {
		if matches(p[i], t[i], cfg.IUPAC) {
			continue
		}
		if i >= protectFrom && i < protectTo {
			return false
		}
		mismatches++
		if mismatches > cfg.Mismatches {
			return false
		}
	}
	return true
}

// protectedRange returns the half-open [from, to) index range of the
// protected region within a primer of length n.
func protectedRange(n int, dir Direction, protect int) (from, to int) {
	if protect > n {
		protect = n
	}
	if dir == FWD {
		return n - protect, n
	}
	return 0, protect
}

func matches(p, t byte, iupac bool) bool {
	if iupac {
		return nucleic.IUPACMatch(p, t)
	}
	if nucleic.IsAmbiguous(p) || nucleic.IsAmbiguous(t) {
		return false
	}
	return foldEqual(p, t)
}

func foldEqual(a, b byte) bool {
	return upper(a) == upper(b)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
