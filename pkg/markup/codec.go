// Package markup parses and renders the section-sign formatting codes used
// in Minecraft strings, such as "§cRed§r plain".
package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Prefix starts every formatting code
const Prefix = "§"

// Kind distinguishes plain text runs from formatting codes
type Kind int

const (
	KindText Kind = iota
	KindCode
)

func (k Kind) String() string {
	if k == KindCode {
		return "code"
	}
	return "text"
}

// Style is a text decoration switched on by a format code
type Style int

const (
	Bold Style = iota
	Strikethrough
	Underline
	Italic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Strikethrough:
		return "strikethrough"
	case Underline:
		return "underline"
	case Italic:
		return "italic"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// Code describes one entry of the code alphabet
type Code struct {
	Char  byte
	Name  string
	Color string // hex color, empty for format codes
	Style *Style // nil for colors and reset
	Reset bool
}

func stylePtr(s Style) *Style { return &s }

var alphabet = []Code{
	{Char: '0', Name: "black", Color: "#000000"},
	{Char: '1', Name: "dark_blue", Color: "#0000AA"},
	{Char: '2', Name: "dark_green", Color: "#00AA00"},
	{Char: '3', Name: "dark_aqua", Color: "#00AAAA"},
	{Char: '4', Name: "dark_red", Color: "#AA0000"},
	{Char: '5', Name: "dark_purple", Color: "#AA00AA"},
	{Char: '6', Name: "gold", Color: "#FFAA00"},
	{Char: '7', Name: "gray", Color: "#AAAAAA"},
	{Char: '8', Name: "dark_gray", Color: "#555555"},
	{Char: '9', Name: "blue", Color: "#5555FF"},
	{Char: 'a', Name: "green", Color: "#55FF55"},
	{Char: 'b', Name: "aqua", Color: "#55FFFF"},
	{Char: 'c', Name: "red", Color: "#FF5555"},
	{Char: 'd', Name: "light_purple", Color: "#FF55FF"},
	{Char: 'e', Name: "yellow", Color: "#FFFF55"},
	{Char: 'f', Name: "white", Color: "#FFFFFF"},
	{Char: 'l', Name: "bold", Style: stylePtr(Bold)},
	{Char: 'm', Name: "strikethrough", Style: stylePtr(Strikethrough)},
	{Char: 'n', Name: "underline", Style: stylePtr(Underline)},
	{Char: 'o', Name: "italic", Style: stylePtr(Italic)},
	{Char: 'r', Name: "reset", Reset: true},
}

var byChar = func() map[byte]Code {
	m := make(map[byte]Code, len(alphabet))
	for _, c := range alphabet {
		m[c.Char] = c
	}
	return m
}()

// Codes returns the code alphabet in legend order
func Codes() []Code {
	out := make([]Code, len(alphabet))
	copy(out, alphabet)
	return out
}

// Lookup finds the code for c, ignoring case
func Lookup(c byte) (Code, bool) {
	code, ok := byChar[toLower(c)]
	return code, ok
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Token is one parsed unit of a string: a text run or a formatting code
type Token struct {
	Kind    Kind
	Content string
	Color   string
	Styles  []Style
	Reset   bool
}

// codeAt reports whether a valid code starts at byte offset i
func codeAt(text string, i int) (Code, bool) {
	if !strings.HasPrefix(text[i:], Prefix) {
		return Code{}, false
	}
	j := i + len(Prefix)
	if j >= len(text) {
		return Code{}, false
	}
	return Lookup(text[j])
}

// nextCode returns the offset of the first valid code at or after from, or -1
func nextCode(text string, from int) int {
	for i := from; i < len(text); {
		idx := strings.Index(text[i:], Prefix)
		if idx < 0 {
			return -1
		}
		if _, ok := codeAt(text, i+idx); ok {
			return i + idx
		}
		i += idx + len(Prefix)
	}
	return -1
}

// Parse splits text into tokens. Joining every token's Content yields text.
// A prefix not followed by a valid code character stays part of the text run.
func Parse(text string) []Token {
	var tokens []Token
	for i := 0; i < len(text); {
		if code, ok := codeAt(text, i); ok {
			end := i + len(Prefix) + 1
			tok := Token{Kind: KindCode, Content: text[i:end], Color: code.Color, Reset: code.Reset}
			if code.Style != nil {
				tok.Styles = []Style{*code.Style}
			}
			tokens = append(tokens, tok)
			i = end
			continue
		}

		end := nextCode(text, i)
		if end < 0 {
			end = len(text)
		}
		tokens = append(tokens, Token{Kind: KindText, Content: text[i:end]})
		i = end
	}
	return tokens
}

// Join concatenates token contents
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Content)
	}
	return b.String()
}

// Strip removes all valid codes, leaving the visible text
func Strip(text string) string {
	var b strings.Builder
	for _, t := range Parse(text) {
		if t.Kind == KindText {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}

// HasCodes reports whether text contains at least one valid code
func HasCodes(text string) bool {
	return nextCode(text, 0) >= 0
}

// Insert places the code for c at rune offset pos of text.
// Offsets past the end append the code.
func Insert(text string, pos int, c byte) (string, error) {
	code, ok := Lookup(c)
	if !ok {
		return text, fmt.Errorf("unknown format code %q", c)
	}
	if pos < 0 {
		pos = 0
	}
	offset := len(text)
	if pos < utf8.RuneCountInString(text) {
		n := 0
		for i := range text {
			if n == pos {
				offset = i
				break
			}
			n++
		}
	}
	return text[:offset] + Prefix + string(code.Char) + text[offset:], nil
}
