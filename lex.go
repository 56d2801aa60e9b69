package reactions

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenElement is an element symbol.
	tokenElement
	// tokenCount is a run of digits.
	tokenCount
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
	// stray holds lowercase letters left over after the longest known
	// symbol at the start of a run.
	stray lexToken
	// known reports whether a symbol is a valid element token.
	known func(string) bool
}

func lex(src io.RuneScanner, known func(string) bool) *lexer {
	return &lexer{
		src:   src,
		rune:  1,
		known: known,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("reactions: double push")
	}
	l.p = tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. Runes that cannot be part of a
// formula, such as whitespace and charge markers, are skipped. The first time
// EOF is encountered, the result is an EOF token with a nil error. Subsequent
// times, if the EOF token is not pushed, the result is an empty token with
// io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.stray.text != "" {
		s := l.stray
		l.stray = lexToken{}
		return lexToken{pos: s.pos}, &LexError{Text: s.text, Col: s.pos}
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanCount(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenCount
			return tok, nil
		case 'A' <= r && r <= 'Z':
			l.buf.WriteRune(r)
			if err := l.scanSymbol(); err != nil {
				return tok, err
			}
			sym := l.buf.String()
			tok.kind = tokenElement
			if !l.known(sym) {
				n := l.prefix(sym)
				if n == 0 {
					tok.text = sym
					return tok, &SymbolError{Col: tok.pos, Symbol: sym}
				}
				l.stray = lexToken{text: sym[n:], pos: tok.pos + n}
				sym = sym[:n]
			}
			tok.text = sym
			return tok, nil
		case 'a' <= r && r <= 'z':
			// Lowercase letters only continue symbols.
			l.buf.WriteRune(r)
			return tok, &LexError{Text: l.buf.String(), Col: tok.pos}
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			tok.pos++
		}
	}
}

func (l *lexer) scanCount() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < '0' || '9' < r {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// scanSymbol scans the lowercase letters following the uppercase letter
// already written to the buffer.
func (l *lexer) scanSymbol() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < 'a' || 'z' < r {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// prefix returns the length of the longest known proper prefix of sym, or 0 if
// there is none.
func (l *lexer) prefix(sym string) int {
	for n := len(sym) - 1; n > 0; n-- {
		if l.known(sym[:n]) {
			return n
		}
	}
	return 0
}

// LexError indicates a rune that cannot begin a token. It implements
// InputError.
type LexError struct {
	// Text is the invalid text.
	Text string
	// Col is the position of the invalid text.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrMalformedFormula
}
