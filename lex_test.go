package reactions

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// empty
		{"", []lexToken{{kind: tokenEOF, pos: 1}}, 0},
		{" \t ", []lexToken{{kind: tokenEOF, pos: 4}}, 0},
		// elements and counts
		{"H2O", []lexToken{{text: "H", kind: tokenElement, pos: 1}, {text: "2", kind: tokenCount, pos: 2}, {text: "O", kind: tokenElement, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"Co", []lexToken{{text: "Co", kind: tokenElement, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		{"CO", []lexToken{{text: "C", kind: tokenElement, pos: 1}, {text: "O", kind: tokenElement, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"Uuo", []lexToken{{text: "Uuo", kind: tokenElement, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"H0", []lexToken{{text: "H", kind: tokenElement, pos: 1}, {text: "0", kind: tokenCount, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"C12", []lexToken{{text: "C", kind: tokenElement, pos: 1}, {text: "12", kind: tokenCount, pos: 2}, {kind: tokenEOF, pos: 4}}, 0},
		// brackets
		{" (OH)2", []lexToken{{text: "(", kind: tokenOpen, pos: 2}, {text: "O", kind: tokenElement, pos: 3}, {text: "H", kind: tokenElement, pos: 4}, {text: ")", kind: tokenClose, pos: 5}, {text: "2", kind: tokenCount, pos: 6}, {kind: tokenEOF, pos: 7}}, 0},
		// noise
		{"Na+", []lexToken{{text: "Na", kind: tokenElement, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"Cl-·[]", []lexToken{{text: "Cl", kind: tokenElement, pos: 1}, {kind: tokenEOF, pos: 7}}, 0},
		// erroneous symbols
		{"Xx", []lexToken{{text: "Xx", kind: tokenElement, pos: 1}, {kind: tokenEOF, pos: 3}}, 1},
		{"Hx", []lexToken{{text: "H", kind: tokenElement, pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 1},
		{"Hex2", []lexToken{{text: "He", kind: tokenElement, pos: 1}, {pos: 3}, {text: "2", kind: tokenCount, pos: 4}, {kind: tokenEOF, pos: 5}}, 1},
		{"Uuox", []lexToken{{text: "Uuo", kind: tokenElement, pos: 1}, {pos: 4}, {kind: tokenEOF, pos: 5}}, 1},
		{"e", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"He2e", []lexToken{{text: "He", kind: tokenElement, pos: 1}, {text: "2", kind: tokenCount, pos: 3}, {pos: 4}, {kind: tokenEOF, pos: 5}}, 1},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src), IsElement)
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if !errors.Is(err, ErrMalformedFormula) {
					t.Errorf("scanning %q: error %v is not ErrMalformedFormula", c.src, err)
				}
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(); err != io.EOF; got, err = scan.next() {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexLongestSymbol(t *testing.T) {
	scan := lex(strings.NewReader("Hexa"), IsElement)
	tok, err := scan.next()
	if err != nil || tok.text != "He" {
		t.Fatalf("want He, got %v, %v", tok, err)
	}
	_, err = scan.next()
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("want *LexError, got %v", err)
	}
	if le.Text != "xa" || le.Col != 3 {
		t.Errorf("wrong stray letters: want %q at 3, got %q at %d", "xa", le.Text, le.Col)
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("H2"), IsElement)
	tok, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	again, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	if again != tok {
		t.Errorf("pushed %v, got %v", tok, again)
	}
	defer func() {
		if recover() == nil {
			t.Error("double push did not panic")
		}
	}()
	scan.push(tok)
	scan.push(tok)
}
