package lexer

import (
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `let x = 5
	x = x + 10
	`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"let", LET},
		{"x", IDENT},
		{"=", EQ},
		{"5", NUMBER},
		{"x", IDENT},
		{"=", EQ},
		{"x", IDENT},
		{"+", PLUS},
		{"10", NUMBER},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `if else elif while for in func function return break continue
		let const var import true false null undefined
		print input range length
		start stop server http read write delete exists mkdir
		window clear rect circle render hash encrypt decrypt salt
		compile tcc gcc`

	tests := []TokenType{
		IF, ELSE, ELIF, WHILE, FOR, IN, FUNC, FUNC, RETURN, BREAK, CONTINUE,
		LET, CONST, VAR, IMPORT, TRUE, FALSE, NULL, UNDEFINED,
		PRINT, INPUT, RANGE, LENGTH,
		START, STOP, SERVER, HTTP, READ, WRITE, DELETE, EXISTS, MKDIR,
		WINDOW, CLEAR, RECT, CIRCLE, RENDER, HASH, ENCRYPT, DECRYPT, SALT,
		COMPILE, TCC, GCC,
		EOF,
	}

	l := New(input)

	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `=== !== == != <= >= << >> && || ** ++ -- += -= *= /= ->
		+ - * / % = < > ! & | ^ ~ ( ) { } [ ] , : ; . ? @`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"===", EQ_EQ_EQ},
		{"!==", NOT_EQ_EQ},
		{"==", EQ_EQ},
		{"!=", NOT_EQ},
		{"<=", LESS_EQ},
		{">=", GREATER_EQ},
		{"<<", SHL},
		{">>", SHR},
		{"&&", AND},
		{"||", OR},
		{"**", POWER},
		{"++", INC},
		{"--", DEC},
		{"+=", PLUS_ASSIGN},
		{"-=", MINUS_ASSIGN},
		{"*=", STAR_ASSIGN},
		{"/=", SLASH_ASSIGN},
		{"->", ARROW},
		{"+", PLUS},
		{"-", MINUS},
		{"*", STAR},
		{"/", SLASH},
		{"%", PERCENT},
		{"=", EQ},
		{"<", LESS},
		{">", GREATER},
		{"!", NOT},
		{"&", BIT_AND},
		{"|", BIT_OR},
		{"^", BIT_XOR},
		{"~", BIT_NOT},
		{"(", LPAREN},
		{")", RPAREN},
		{"{", LBRACE},
		{"}", RBRACE},
		{"[", LBRACKET},
		{"]", RBRACKET},
		{",", COMMA},
		{":", COLON},
		{";", SEMICOLON},
		{".", DOT},
		{"?", QUESTION},
		{"@", AT},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{"`backtick`", "backtick"},
		{`"with spaces and 123"`, "with spaces and 123"},
		{`"escaped \" quote"`, `escaped " quote`},
		{`"tab\there"`, "tab\there"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"back\\slash"`, `back\slash`},
		{`"pass\qthrough"`, "passqthrough"},
		{`"unterminated`, "unterminated"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("input %q - tokentype wrong. expected=STRING, got=%q", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("input %q - literal wrong. expected=%q, got=%q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e9", "1e9"},
		{"1.5e-3", "1.5e-3"},
		{"2E+10", "2E+10"},
		{"1.2.3", "1.2.3"}, // malformed, still a NUMBER token
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("input %q - tokentype wrong. expected=NUMBER, got=%q", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("input %q - literal wrong. expected=%q, got=%q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestComments(t *testing.T) {
	input := `let x = 1 # this is a comment
# a full-line comment
let y = 2`

	tests := []TokenType{LET, IDENT, EQ, NUMBER, LET, IDENT, EQ, NUMBER, EOF}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, expected, tok.Type)
		}
	}
}

func TestLineTracking(t *testing.T) {
	input := "let a = 1\nlet b = 2\n\nlet c = 3"

	l := New(input)
	lines := []int{1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4}
	for i, expected := range lines {
		tok := l.NextToken()
		if tok.Line != expected {
			t.Fatalf("tokens[%d] (%q) - line wrong. expected=%d, got=%d",
				i, tok.Literal, expected, tok.Line)
		}
	}
}

func TestUnknownCharactersSkipped(t *testing.T) {
	input := "let $ x = 1"

	l := New(input)
	tests := []TokenType{LET, IDENT, EQ, NUMBER, EOF}
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, expected, tok.Type)
		}
	}

	diags := l.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Line != 1 {
		t.Errorf("diagnostic line wrong. expected=1, got=%d", diags[0].Line)
	}
}

func TestLexerIsTotal(t *testing.T) {
	// Nothing should ever stop the lexer: junk, unterminated strings
	// and malformed numbers all tokenize to something.
	inputs := []string{
		"$$$$",
		`"never closed`,
		"1.2.3.4e",
		"\x00\x01\x02",
		"emoji 🚀 in source",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
			t.Fatalf("input %q - token stream not EOF-terminated", input)
		}
	}
}

// TestRoundTrip re-lexes the joined lexemes of a script and checks the
// token kinds survive. String literals are re-quoted; the scripts avoid
// escapes so the quoting is lossless.
func TestRoundTrip(t *testing.T) {
	scripts := []string{
		`let a = [1, 2, 3]`,
		`func add(x, y) { return x + y }`,
		`if (n == 0) { print("zero") } else { print(n) }`,
		`while i < 10 { i += 1 }`,
		`const key = hash("data", "sha256")`,
	}

	for _, script := range scripts {
		first := Tokenize(script)

		var sb strings.Builder
		for _, tok := range first {
			if tok.Type == EOF {
				break
			}
			if tok.Type == STRING {
				sb.WriteString(`"` + tok.Literal + `"`)
			} else {
				sb.WriteString(tok.Literal)
			}
			sb.WriteByte(' ')
		}

		second := Tokenize(sb.String())
		if len(first) != len(second) {
			t.Fatalf("script %q - token count changed: %d != %d", script, len(first), len(second))
		}
		for i := range first {
			if first[i].Type != second[i].Type {
				t.Fatalf("script %q - token %d kind changed: %q != %q",
					script, i, first[i].Type, second[i].Type)
			}
		}
	}
}

func TestTokenTypePredicates(t *testing.T) {
	if !NUMBER.IsLiteral() || !STRING.IsLiteral() || !IDENT.IsLiteral() {
		t.Error("literal predicate wrong")
	}
	if !WHILE.IsKeyword() || !HASH.IsKeyword() {
		t.Error("keyword predicate wrong")
	}
	if !PLUS.IsOperator() || !SHR.IsOperator() {
		t.Error("operator predicate wrong")
	}
	if !LPAREN.IsDelimiter() || !COMMA.IsDelimiter() {
		t.Error("delimiter predicate wrong")
	}
	if EOF.IsLiteral() || EOF.IsKeyword() || EOF.IsOperator() {
		t.Error("EOF should not classify as anything")
	}
}
