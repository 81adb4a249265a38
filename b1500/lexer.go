package b1500

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/go-b1500/internal/queue"
)

const eof = -1

// token represents a tokenized text string that a lexer identified.
type token struct {
	typ tokenType // token type
	val string    // tokenized text
	pos int       // byte offset in the input
}

type tokenType int

const (
	tokenTypeEOF       tokenType = iota // end of line
	tokenTypeError                      // lexing error, val holds the message
	tokenTypeTag                        // command mnemonic, e.g. 'RI', 'WT', 'CMM'
	tokenTypeNumber                     // decimal number, optional sign, fraction and exponent
	tokenTypeComma                      // ','
	tokenTypeSemicolon                  // ';'
)

func (t tokenType) String() string {
	switch t {
	case tokenTypeEOF:
		return "end of line"
	case tokenTypeError:
		return "error"
	case tokenTypeTag:
		return "tag"
	case tokenTypeNumber:
		return "number"
	case tokenTypeComma:
		return "','"
	case tokenTypeSemicolon:
		return "';'"
	default:
		return "unknown"
	}
}

// lexer scans one learned-settings response line.
//
// Grammar:
//
//	line   = [ entry { ";" entry } [ ";" ] ] EOL
//	entry  = tag [ [ " " ] number { "," number } ]
//	tag    = letter { letter }
//	number = [ "+" | "-" ] digits [ "." digits ] [ ( "e" | "E" ) [ "+" | "-" ] digits ]
type lexer struct {
	input  string  // input string being lexed
	state  stateFn // next lexing state function to enter
	pos    int     // current position in the input
	start  int     // start position of the token being lexed
	width  int     // width of last rune read from input
	done   bool    // set once an EOF or error token is queued
	tokens *queue.Queue[token]
}

// stateFn represents the state of the lexer as a function that returns the next state.
type stateFn func(*lexer) stateFn

func newLexer(input string) *lexer {
	return &lexer{
		input:  strings.TrimRight(input, "\r\n"),
		state:  lexEntry,
		tokens: queue.New[token](8),
	}
}

// nextToken returns the next token from the input. After the EOF or an
// error token it keeps returning EOF.
func (l *lexer) nextToken() token {
	for {
		if t, ok := l.tokens.Dequeue(); ok {
			return t
		}
		if l.done || l.state == nil {
			return token{typ: tokenTypeEOF, pos: l.pos}
		}
		l.state = l.state(l)
	}
}

// next returns the next rune in the input and moves the position.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w

	return r
}

// back steps back one rune.
func (l *lexer) back() {
	l.pos -= l.width
}

// peek returns the next rune in the input without consuming it.
func (l *lexer) peek() rune {
	r := l.next()
	l.back()

	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// emit queues a token holding the pending input.
func (l *lexer) emit(t tokenType) {
	l.tokens.Enqueue(token{typ: t, val: l.input[l.start:l.pos], pos: l.start})
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.back()

	return false
}

// acceptRun consumes a run of runes from the valid set and reports whether
// at least one rune was consumed.
func (l *lexer) acceptRun(valid string) bool {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.back()

	return n > 0
}

// skipSpace drops blanks before the next token.
func (l *lexer) skipSpace() {
	l.acceptRun(" \t")
	l.ignore()
}

// errorf queues an error token and terminates the scan.
func (l *lexer) errorf(format string, args ...any) stateFn {
	l.tokens.Enqueue(token{typ: tokenTypeError, val: fmt.Sprintf(format, args...), pos: l.start})
	l.done = true

	return nil
}

func (l *lexer) emitEOF() stateFn {
	l.emit(tokenTypeEOF)
	l.done = true

	return nil
}

// lexEntry scans the start of an entry: a tag, a stray separator or the end of line.
func lexEntry(l *lexer) stateFn {
	l.skipSpace()

	switch r := l.peek(); {
	case r == eof:
		return l.emitEOF()
	case r == ';':
		l.next()
		l.emit(tokenTypeSemicolon)
		return lexEntry
	case isLetter(r):
		for isLetter(l.peek()) {
			l.next()
		}
		l.emit(tokenTypeTag)
		return lexFields
	default:
		l.next()
		return l.errorf("unexpected character %q, expecting a tag", r)
	}
}

// lexFields scans the comma separated fields that follow a tag.
func lexFields(l *lexer) stateFn {
	l.skipSpace()

	switch r := l.peek(); {
	case r == eof:
		return l.emitEOF()
	case r == ',':
		l.next()
		l.emit(tokenTypeComma)
		return lexFields
	case r == ';':
		l.next()
		l.emit(tokenTypeSemicolon)
		return lexEntry
	case r == '+' || r == '-' || r == '.' || isDigit(r):
		return lexNumber
	default:
		l.next()
		return l.errorf("unexpected character %q in field", r)
	}
}

// lexNumber scans a number, which is known to be present.
func lexNumber(l *lexer) stateFn {
	const digits = "0123456789"

	l.accept("+-")
	intPart := l.acceptRun(digits)
	fracPart := false
	if l.accept(".") {
		fracPart = l.acceptRun(digits)
	}
	if !intPart && !fracPart {
		return l.errorf("invalid number syntax: %q", l.input[l.start:l.pos])
	}

	if l.accept("eE") {
		l.accept("+-")
		if !l.acceptRun(digits) {
			return l.errorf("invalid number exponent: %q", l.input[l.start:l.pos])
		}
	}

	// Next thing must not be alphanumeric
	if r := l.peek(); isLetter(r) || isDigit(r) {
		l.next()
		return l.errorf("invalid number syntax: %q", l.input[l.start:l.pos])
	}

	l.emit(tokenTypeNumber)

	return lexFields
}

// isLetter reports whether r is an ASCII letter.
func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isDigit reports whether r is a digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
