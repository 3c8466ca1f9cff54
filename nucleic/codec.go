// Package nucleic provides the 2-bit nucleotide codec and IUPAC
// ambiguity tables shared by the primer, index, compare and scan
// packages.
package nucleic

// Code is a 2-bit packed nucleotide code.
type Code byte

// Concrete base codes. Values are fixed by the rolling hash in the
// scan package and the hash words built by the primer package, which
// pack four of these into each byte of key.
const (
	A Code = 0
	C Code = 1
	G Code = 2
	T Code = 3

	// Invalid marks a byte that is not one of A/C/G/T (case
	// insensitive), including IUPAC ambiguity letters.
	Invalid Code = 0xff
)

// Code2 returns the 2-bit code for b, or Invalid if b is not an
// unambiguous nucleotide.
func Code2(b byte) Code {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't':
		return T
	default:
		return Invalid
	}
}

// baseMask is a bitmask over {A,C,G,T} (bit 0 = A, 1 = C, 2 = G, 3 = T)
// denoting the set of concrete bases an IUPAC letter represents.
type baseMask byte

const (
	maskA baseMask = 1 << iota
	maskC
	maskG
	maskT
)

const maskN = maskA | maskC | maskG | maskT

// masks maps upper-case IUPAC letters to the set of bases they denote.
// Non-IUPAC bytes are absent and treated as maskN by maskFor, matching
// the "unknown inputs complement to N" rule for Complement and the
// conservative (always-intersects) fallback for IUPACMatch.
var masks = map[byte]baseMask{
	'A': maskA,
	'C': maskC,
	'G': maskG,
	'T': maskT,
	'R': maskA | maskG,
	'Y': maskC | maskT,
	'S': maskC | maskG,
	'W': maskA | maskT,
	'K': maskG | maskT,
	'M': maskA | maskC,
	'B': maskC | maskG | maskT,
	'D': maskA | maskG | maskT,
	'H': maskA | maskC | maskT,
	'V': maskA | maskC | maskG,
	'N': maskN,
}

func maskFor(b byte) baseMask {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	m, ok := masks[b]
	if !ok {
		return maskN
	}
	return m
}

// complements maps each upper-case IUPAC letter to its complement,
// per spec: unambiguous pairs A<->T, C<->G, plus the IUPAC pairs
// R<->Y, M<->K, B<->V, D<->H, S<->S, W<->W, N<->N. Letters not in this
// table complement to N.
var complements = map[byte]byte{
	'A': 'T', 'T': 'A',
	'C': 'G', 'G': 'C',
	'R': 'Y', 'Y': 'R',
	'M': 'K', 'K': 'M',
	'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D',
	'S': 'S', 'W': 'W',
	'N': 'N',
}

// Complement returns the complement of b, preserving case. Bytes
// outside the IUPAC alphabet complement to N (upper or lower case to
// match the input).
func Complement(b byte) byte {
	lower := b >= 'a' && b <= 'z'
	u := b
	if lower {
		u -= 'a' - 'A'
	}
	c, ok := complements[u]
	if !ok {
		c = 'N'
	}
	if lower {
		c += 'a' - 'A'
	}
	return c
}

// ReverseComplement returns the reverse complement of s. It does not
// modify s.
func ReverseComplement(s []byte) []byte {
	out := make([]byte, len(s))
	n := len(s)
	for i, b := range s {
		out[n-1-i] = Complement(b)
	}
	return out
}

// IUPACMatch reports whether the set of concrete bases denoted by p
// (a primer position) intersects the set denoted by t (a target
// position). It is only meaningful when IUPAC mode is enabled; callers
// doing plain comparison should use byte equality instead (see the
// compare package).
func IUPACMatch(p, t byte) bool {
	return maskFor(p)&maskFor(t) != 0
}

// IsAmbiguous reports whether b is not one of A/C/G/T (case
// insensitive).
func IsAmbiguous(b byte) bool {
	return Code2(b) == Invalid
}
