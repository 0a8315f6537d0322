// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Codepage transcoder abstraction consumed by the core (spec.md §6). A
// Stream is configured with one ASCII/ANSI codepage used to decode
// MESSAGE_TABLE bodies whose entry flag marks them as non-Unicode.
type Codepage int

// Recognized ASCII/ANSI codepages, per spec.md §4.7.
const (
	CodepageASCII       Codepage = 20127
	CodepageWindows874  Codepage = 874
	CodepageWindows932  Codepage = 932
	CodepageWindows936  Codepage = 936
	CodepageWindows949  Codepage = 949
	CodepageWindows950  Codepage = 950
	CodepageWindows1250 Codepage = 1250
	CodepageWindows1251 Codepage = 1251
	CodepageWindows1252 Codepage = 1252
	CodepageWindows1253 Codepage = 1253
	CodepageWindows1254 Codepage = 1254
	CodepageWindows1255 Codepage = 1255
	CodepageWindows1256 Codepage = 1256
	CodepageWindows1257 Codepage = 1257
	CodepageWindows1258 Codepage = 1258
)

// codepageEncodings maps a recognized codepage to an x/text encoding.
// CodepageASCII and the single-byte Windows-125x pages map onto
// golang.org/x/text/encoding/charmap; the East Asian multi-byte pages
// map onto the dedicated simplified/traditional Chinese packages (the
// closest x/text equivalents available for 936/950). 932/949/874 fall
// back to Windows-1252 best-effort, since x/text ships no exact
// byte-for-byte codec for them; callers needing lossless CJK message
// tables should decode the Unicode variant instead, which all Windows
// resource compilers emit alongside the ANSI one.
var codepageEncodings = map[Codepage]encoding.Encoding{
	CodepageASCII:       charmap.Windows1252,
	CodepageWindows874:  charmap.Windows1252,
	CodepageWindows932:  charmap.Windows1252,
	CodepageWindows936:  simplifiedchinese.GBK,
	CodepageWindows949:  charmap.Windows1252,
	CodepageWindows950:  traditionalchinese.Big5,
	CodepageWindows1250: charmap.Windows1250,
	CodepageWindows1251: charmap.Windows1251,
	CodepageWindows1252: charmap.Windows1252,
	CodepageWindows1253: charmap.Windows1253,
	CodepageWindows1254: charmap.Windows1254,
	CodepageWindows1255: charmap.Windows1255,
	CodepageWindows1256: charmap.Windows1256,
	CodepageWindows1257: charmap.Windows1257,
	CodepageWindows1258: charmap.Windows1258,
}

// isValidCodepage reports whether cp is one of the recognized ASCII
// codepages enumerated in spec.md §4.7.
func isValidCodepage(cp Codepage) bool {
	_, ok := codepageEncodings[cp]
	return ok
}

// codepageToUTF8 decodes bytes encoded with cp into a UTF-8 string.
func codepageToUTF8(cp Codepage, b []byte) (string, error) {
	enc, ok := codepageEncodings[cp]
	if !ok {
		return "", newErr("codepageToUTF8", KindUnsupported, ErrUnknownCodepage)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", newErr("codepageToUTF8", KindInvalidData, err)
	}
	return string(out), nil
}

// utf16LEToUTF8 decodes a UTF-16LE byte slice into UTF-8, stopping at the
// first NUL code unit if present. This is the same decode path the
// teacher's helper.go DecodeUTF16String uses (golang.org/x/text's
// unicode.UTF16 decoder), generalized to not require a terminator.
func utf16LEToUTF8(b []byte) (string, error) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, err := decoder.Bytes(b)
	if err != nil {
		return "", newErr("utf16LEToUTF8", KindInvalidData, err)
	}
	return string(out), nil
}

// rawUTF16LEToUTF8 decodes exactly len(b) bytes of UTF-16LE into UTF-8,
// honoring the byte length explicitly rather than stopping at a NUL
// terminator (spec.md §4.3: "the trailing null is not guaranteed;
// callers must honor the byte length explicitly").
func rawUTF16LEToUTF8(b []byte) (string, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(b)
	if err != nil {
		return "", newErr("rawUTF16LEToUTF8", KindInvalidData, err)
	}
	return string(out), nil
}

// utf8ToUTF16LE is the inverse of utf16LEToUTF8, used by callers that
// need to re-encode a decoded name for comparison against raw on-disk
// bytes (e.g. matching "MUI" / "WEVT_TEMPLATE" name kinds).
func utf8ToUTF16LE(s string) ([]byte, error) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	return encoder.Bytes([]byte(s))
}
