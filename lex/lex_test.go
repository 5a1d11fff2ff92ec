package lex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/ratherlargerobot/marwood"
)

func kinds(toks []Token) []marwood.TokType {
	var k []marwood.TokType
	for _, t := range toks {
		k = append(k, t.TokType())
	}
	return k
}

func TestScanSimpleForm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marwood.lex")
	defer teardown()
	//
	toks, err := Scan("(car '(1 2))")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	expected := []marwood.TokType{LeftParen, Sym, Quote, LeftParen, Num, Num, RightParen, RightParen}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), toks)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token #%d expected kind %d, got %d", i, expected[i], got[i])
		}
	}
	if toks[1].Lexeme() != "car" {
		t.Errorf("expected lexeme 'car', got %q", toks[1].Lexeme())
	}
}

func TestScanSpans(t *testing.T) {
	toks, err := Scan("(car x)")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if toks[0].Span() != (marwood.Span{0, 1}) {
		t.Errorf("expected span (0…1), got %s", toks[0].Span())
	}
	if toks[1].Span() != (marwood.Span{1, 4}) {
		t.Errorf("expected span (1…4), got %s", toks[1].Span())
	}
	if toks[2].Span() != (marwood.Span{5, 6}) {
		t.Errorf("expected span (5…6), got %s", toks[2].Span())
	}
}

func TestScanEllipsisIsSymbol(t *testing.T) {
	toks, err := Scan("... ___ *a")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %v", toks)
	}
	for i, lexeme := range []string{"...", "___", "*a"} {
		if toks[i].TokType() != Sym || toks[i].Lexeme() != lexeme {
			t.Errorf("expected symbol %q, got %v", lexeme, toks[i])
		}
	}
}

func TestScanDotVersusEllipsis(t *testing.T) {
	toks, err := Scan("(a . b)")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if toks[2].TokType() != Dot {
		t.Errorf("expected dot token, got %v", toks[2])
	}
}

func TestScanNumbersAndSigns(t *testing.T) {
	toks, err := Scan("-5 - +42 +")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	expected := []marwood.TokType{Num, Sym, Num, Sym}
	for i := range expected {
		if toks[i].TokType() != expected[i] {
			t.Errorf("token #%d (%q) expected kind %d, got %d", i, toks[i].Lexeme(), expected[i], toks[i].TokType())
		}
	}
}

func TestScanBooleans(t *testing.T) {
	toks, err := Scan("#t #f")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 2 || toks[0].TokType() != Bool || toks[1].TokType() != Bool {
		t.Errorf("expected two boolean tokens, got %v", toks)
	}
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := Scan("; a comment\n  42")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 1 || toks[0].TokType() != Num || toks[0].Lexeme() != "42" {
		t.Errorf("expected single number token, got %v", toks)
	}
	toks, err = Scan("   ; only trivia\n")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(toks) != 0 {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestScanBrackets(t *testing.T) {
	toks, err := Scan("[(_ x) 0]")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if toks[0].TokType() != LeftBrack || toks[len(toks)-1].TokType() != RightBrack {
		t.Errorf("expected bracket tokens, got %v", toks)
	}
}
