package formula

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of formula"
	case tokNumber:
		return "number"
	case tokIdent:
		return "name"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	}
	return "token"
}

type token struct {
	typ  tokenType
	text string
	pos  int
}

var punct = map[byte]tokenType{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

type lexer struct {
	src string
	cur int
}

func scan(src string) ([]token, error) {
	l := &lexer{src: src}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.typ == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.cur < len(l.src) && isSpace(l.src[l.cur]) {
		l.cur++
	}
	if l.cur >= len(l.src) {
		return token{typ: tokEOF, pos: l.cur}, nil
	}

	start := l.cur
	c := l.src[l.cur]
	switch {
	case isDigit(c) || c == '.':
		return l.number()
	case isLetter(c):
		for l.cur < len(l.src) && (isLetter(l.src[l.cur]) || isDigit(l.src[l.cur])) {
			l.cur++
		}
		return token{typ: tokIdent, text: l.src[start:l.cur], pos: start}, nil
	}
	if tt, ok := punct[c]; ok {
		l.cur++
		return token{typ: tt, text: string(c), pos: start}, nil
	}
	return token{}, syntaxErr(start, "unexpected character %q", c)
}

// number scans digits, an optional fraction and exponent, and an optional
// imaginary suffix. Validation of the literal is left to numeric.Parse.
func (l *lexer) number() (token, error) {
	start := l.cur
	l.digits()
	if l.peek() == '.' {
		l.cur++
		l.digits()
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		l.cur++
		if c := l.peek(); c == '+' || c == '-' {
			l.cur++
		}
		if !isDigit(l.peek()) {
			return token{}, syntaxErr(l.cur, "malformed exponent")
		}
		l.digits()
	}
	if l.peek() == 'i' {
		l.cur++
	}
	if isLetter(l.peek()) {
		return token{}, syntaxErr(l.cur, "unexpected %q after number", l.peek())
	}
	return token{typ: tokNumber, text: l.src[start:l.cur], pos: start}, nil
}

func (l *lexer) digits() {
	for isDigit(l.peek()) {
		l.cur++
	}
}

func (l *lexer) peek() byte {
	if l.cur >= len(l.src) {
		return 0
	}
	return l.src[l.cur]
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
