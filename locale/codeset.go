package locale

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// multiByte holds the longest character of each multi-byte encoding
var multiByte = map[encoding.Encoding]int{
	japanese.EUCJP:            3,
	japanese.ShiftJIS:         2,
	korean.EUCKR:              2,
	simplifiedchinese.GBK:     2,
	simplifiedchinese.GB18030: 4,
	traditionalchinese.Big5:   2,
}

// glibcCodesets are codeset spellings used in glibc locale names, normalized,
// including ones the IANA index does not resolve
var glibcCodesets = map[string]int{
	"utf8":      4,
	"eucjp":     3,
	"sjis":      2,
	"shiftjis":  2,
	"euckr":     2,
	"euctw":     4,
	"gb2312":    2,
	"gbk":       2,
	"gb18030":   4,
	"big5":      2,
	"big5hkscs": 2,
}

func normalizeCodeset(cs string) string {
	cs = strings.ToLower(cs)
	cs = strings.ReplaceAll(cs, "-", "")
	return strings.ReplaceAll(cs, "_", "")
}

func lookupEncoding(cs string) (encoding.Encoding, bool) {
	enc, err := ianaindex.IANA.Encoding(cs)
	if err != nil || enc == nil {
		return nil, false
	}
	return enc, true
}

func knownEncoding(cs string) bool {
	if _, ok := glibcCodesets[normalizeCodeset(cs)]; ok {
		return true
	}
	_, ok := lookupEncoding(cs)
	return ok
}

// CodesetWidth returns the maximum bytes per character of a codeset, 1 when unknown
func CodesetWidth(cs string) int {
	if n, ok := glibcCodesets[normalizeCodeset(cs)]; ok {
		return n
	}
	enc, ok := lookupEncoding(cs)
	if !ok {
		return 1
	}
	if _, single := enc.(*charmap.Charmap); single {
		return 1
	}
	if enc == unicode.UTF8 {
		return 4
	}
	if n, ok := multiByte[enc]; ok {
		return n
	}
	return 1
}
