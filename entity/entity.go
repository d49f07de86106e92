// Package entity handles XML entity escaping for the five reserved
// characters, plus a preparse repair pass for raw ampersands in slightly
// malformed input.
package entity

import (
	"strconv"
	"strings"
)

var escapes = map[byte]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&apos;",
}

var named = map[string]byte{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"quot": '"',
	"apos": '\'',
}

// Escape maps the five XML-reserved characters to entity references. It
// never double-escapes: an ampersand that already begins one of the five
// named references is left alone, so Escape(Escape(s)) == Escape(s).
// A numeric reference is NOT left alone: a literal "&#x41;" in a value
// escapes to "&amp;#x41;", so Unescape gives back exactly the original
// text and Escape(Unescape(Escape(s))) == Escape(s).
func Escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '&' {
			if n := namedRefLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
				continue
			}
		}
		if e, ok := escapes[c]; ok {
			b.WriteString(e)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape maps entity references back to characters. The five named
// references and numeric references (decimal and hex) are recognized;
// anything else is left verbatim.
func Unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			continue
		}
		n := refLen(s[i:])
		if n == 0 {
			b.WriteByte(c)
			continue
		}
		body := s[i+1 : i+n-1]
		if ch, ok := named[body]; ok {
			b.WriteByte(ch)
		} else {
			r := numericRune(body)
			b.WriteRune(r)
		}
		i += n - 1
	}
	return b.String()
}

// Preprocess repairs raw '&' characters that do not begin a recognized
// entity reference, turning each into "&amp;" so that slightly malformed
// input still parses. Comment and CDATA sections are passed through
// untouched.
func Preprocess(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if skip := sectionLen(s[i:]); skip > 0 {
			b.WriteString(s[i : i+skip])
			i += skip - 1
			continue
		}
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			continue
		}
		if n := refLen(s[i:]); n > 0 {
			b.WriteString(s[i : i+n])
			i += n - 1
			continue
		}
		b.WriteString("&amp;")
	}
	return b.String()
}

// namedRefLen returns the length of the named entity reference at the
// start of s, or 0. Only the five named references count; numeric ones
// return 0 so Escape re-escapes their ampersand.
func namedRefLen(s string) int {
	if len(s) < 4 || s[0] != '&' {
		return 0
	}
	end := strings.IndexByte(s, ';')
	if end < 3 || end > 5 {
		return 0
	}
	if _, ok := named[s[1:end]]; !ok {
		return 0
	}
	return end + 1
}

// refLen returns the length of the entity reference at the start of s,
// or 0 if s does not begin with a recognized reference. Recognized forms
// are the five named references, "&#NNN;" and "&#xHH;".
func refLen(s string) int {
	if len(s) < 3 || s[0] != '&' {
		return 0
	}
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 10 {
		return 0
	}
	body := s[1:end]
	if _, ok := named[body]; ok {
		return end + 1
	}
	if body[0] != '#' {
		return 0
	}
	digits := body[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		digits = digits[1:]
		base = 16
	}
	if digits == "" {
		return 0
	}
	if _, err := strconv.ParseUint(digits, base, 32); err != nil {
		return 0
	}
	return end + 1
}

func numericRune(body string) rune {
	digits := body[1:]
	base := 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits = digits[1:]
		base = 16
	}
	v, _ := strconv.ParseUint(digits, base, 32)
	return rune(v)
}

// sectionLen returns the length of the comment or CDATA section at the
// start of s, or 0. An unterminated section runs to the end of s.
func sectionLen(s string) int {
	for _, sec := range [...]struct{ open, close string }{
		{"<!--", "-->"},
		{"<![CDATA[", "]]>"},
	} {
		if !strings.HasPrefix(s, sec.open) {
			continue
		}
		end := strings.Index(s[len(sec.open):], sec.close)
		if end < 0 {
			return len(s)
		}
		return len(sec.open) + end + len(sec.close)
	}
	return 0
}
