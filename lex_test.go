package arith

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		wseof  string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{src: "", tokens: []lexToken{{kind: tokenEOF, pos: 1}}},
		{src: " \t ", tokens: []lexToken{{kind: tokenEOF, pos: 4}}},
		// numbers
		{src: "0", tokens: []lexToken{{text: "0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 2}}},
		{src: "12.5", tokens: []lexToken{{text: "12.5", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}},
		{src: "1 0", tokens: []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{src: "1e1", tokens: []lexToken{{text: "1e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 4}}},
		{src: "1e+1", tokens: []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}},
		{src: "1e-1", tokens: []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}},
		{src: "1.0e1", tokens: []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 6}}},
		{src: "1e", tokens: []lexToken{{kind: tokenEOF, pos: 3}}, errs: 1},
		{src: "1.", tokens: []lexToken{{kind: tokenEOF, pos: 3}}, errs: 1},
		{src: "1a", tokens: []lexToken{{kind: tokenEOF, pos: 3}}, errs: 1},
		{src: "1.2.3", tokens: []lexToken{{text: "3", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}, errs: 1},
		{src: ".5", tokens: []lexToken{{text: "5", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}, errs: 1},
		// operators
		{src: "-1", tokens: []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}},
		{src: "1+0", tokens: []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{src: "~5!", tokens: []lexToken{{text: "~", kind: tokenOp, pos: 1}, {text: "5", kind: tokenNum, pos: 2}, {text: "!", kind: tokenOp, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{src: "4@6", tokens: []lexToken{{text: "4", kind: tokenNum, pos: 1}, {text: "@", kind: tokenOp, pos: 2}, {text: "6", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
		{src: "5$2&1", tokens: []lexToken{{text: "5", kind: tokenNum, pos: 1}, {text: "$", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 3}, {text: "&", kind: tokenOp, pos: 4}, {text: "1", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}},
		{src: "10%3", tokens: []lexToken{{text: "10", kind: tokenNum, pos: 1}, {text: "%", kind: tokenOp, pos: 3}, {text: "3", kind: tokenNum, pos: 4}, {kind: tokenEOF, pos: 5}}},
		{src: "2^10", tokens: []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "^", kind: tokenOp, pos: 2}, {text: "10", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 5}}},
		{src: "2 + 3", tokens: []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 3}, {text: "3", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}},
		// parens
		{src: "(1)", tokens: []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {kind: tokenEOF, pos: 4}}},
		// erroneous symbols
		{src: "a", tokens: []lexToken{{kind: tokenEOF, pos: 2}}, errs: 1},
		{src: "#1", tokens: []lexToken{{text: "1", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}, errs: 1},
		// whitespace EOF
		{src: "1+2\n3", wseof: "\n", tokens: []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		var got []lexToken
		errs := 0
		for {
			tok, err := scan.next(c.wseof)
			if err == io.EOF {
				break
			}
			if err != nil {
				errs++
				var ie InputError
				if !errors.As(err, &ie) {
					t.Errorf("scanning %q: error %#v is not an InputError", c.src, err)
				}
				continue
			}
			got = append(got, tok)
		}
		if !reflect.DeepEqual(got, c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
		}
		if errs != c.errs {
			t.Errorf("scanning %q: want %d errors, got %d", c.src, c.errs, errs)
		}
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("1+2"))
	tok, err := scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	if got := scan.must(); got != tok {
		t.Errorf("pushed %v but must gave %v", tok, got)
	}
	got, err := scan.next("")
	if err != nil {
		t.Fatal(err)
	}
	if want := (lexToken{text: "+", kind: tokenOp, pos: 2}); got != want {
		t.Errorf("after push and must: want %v, got %v", want, got)
	}
}
