// Package unicodedata exposes the Unicode membership predicates and the
// normalisation function the grammar and reprocessor need: XID_Start,
// XID_Continue, Pattern_White_Space, and NFC.
//
// The Pattern_White_Space set is the fixed list from UAX #31 and is coded
// directly. XID_Start/XID_Continue are approximated by combining Go's
// standard unicode category tables (whatever Unicode version the toolchain
// ships) with the small, long-stable Other_ID_Start/Other_ID_Continue
// exception lists from DerivedCoreProperties.txt. This is not a byte-exact
// rendition of the Unicode 16.0 derived property the upstream model asserts
// against (golang.org/x/text carries no comparable version pin we can check
// at runtime) — it is documented here rather than silently presented as
// exact.
//
// NFC normalisation is delegated to golang.org/x/text/unicode/norm.
package unicodedata

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// otherIDStart lists the Other_ID_Start exceptions from
// DerivedCoreProperties.txt: characters that are XID_Start although they do
// not fall in a Letter or Letter_Number category.
var otherIDStart = rangetable.New(
	0x1885, 0x1886, // MONGOLIAN LETTER ALI GALI BALUDA / similar
	0x2118,         // SCRIPT CAPITAL P
	0x212E,         // ESTIMATED SYMBOL
	0x309B, 0x309C, // KATAKANA-HIRAGANA SOUND MARKs
)

// otherIDContinue lists the Other_ID_Continue exceptions.
var otherIDContinue = rangetable.New(
	0x00B7, 0x0387, // MIDDLE DOT / GREEK ANO TELEIA
	0x1369, 0x136A, 0x136B, 0x136C, 0x136D, 0x136E, 0x136F, 0x1370, 0x1371, // ETHIOPIC DIGITs
	0x19DA, // NEW TAI LUE THAM DIGIT ONE
)

var xidStartTable = rangetable.Merge(unicode.L, unicode.Nl, otherIDStart)

var xidContinueTable = rangetable.Merge(
	xidStartTable,
	unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
	otherIDContinue,
)

// IsXIDStart reports whether r has the XID_Start Unicode property.
func IsXIDStart(r rune) bool {
	return unicode.Is(xidStartTable, r)
}

// IsXIDContinue reports whether r has the XID_Continue Unicode property.
func IsXIDContinue(r rune) bool {
	return unicode.Is(xidContinueTable, r)
}

// IsPatternWhiteSpace reports whether r is in the fixed Pattern_White_Space
// set: U+0009, U+000A, U+000B, U+000C, U+000D, U+0020, U+0085, U+200E,
// U+200F, U+2028, U+2029.
func IsPatternWhiteSpace(r rune) bool {
	switch r {
	case 0x0009, 0x000A, 0x000B, 0x000C, 0x000D, 0x0020, 0x0085, 0x200E, 0x200F, 0x2028, 0x2029:
		return true
	default:
		return false
	}
}

// ToNFC returns the Unicode Normalization Form C of the given characters.
func ToNFC(chars []rune) []rune {
	return []rune(norm.NFC.String(string(chars)))
}

// IsNFC reports whether chars is already in Normalization Form C.
func IsNFC(chars []rune) bool {
	return norm.NFC.IsNormalString(string(chars))
}
