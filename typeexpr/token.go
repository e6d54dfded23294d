package typeexpr

type tokenType int

const (
	tokIdent tokenType = iota
	tokLAngle
	tokRAngle
	tokLParen
	tokRParen
	tokComma
	tokPathSep
	tokInvalid
)

func (t tokenType) String() string {
	switch t {
	case tokIdent:
		return "identifier"
	case tokLAngle:
		return "'<'"
	case tokRAngle:
		return "'>'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokPathSep:
		return "'::'"
	}
	return "invalid character"
}

type token struct {
	Value string
	Type  tokenType
	Col   int
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func tokenize(input string) []token {
	var tokens []token

	for i := 0; i < len(input); i++ {
		c := input[i]
		col := i + 1

		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '<':
			tokens = append(tokens, token{"<", tokLAngle, col})
			continue
		case '>':
			tokens = append(tokens, token{">", tokRAngle, col})
			continue
		case '(':
			tokens = append(tokens, token{"(", tokLParen, col})
			continue
		case ')':
			tokens = append(tokens, token{")", tokRParen, col})
			continue
		case ',':
			tokens = append(tokens, token{",", tokComma, col})
			continue
		case ':':
			if i+1 < len(input) && input[i+1] == ':' {
				tokens = append(tokens, token{"::", tokPathSep, col})
				i++
				continue
			}
		}

		if isIdentChar(c) {
			start := i
			for i < len(input) && isIdentChar(input[i]) {
				i++
			}
			tokens = append(tokens, token{input[start:i], tokIdent, col})
			i--
			continue
		}

		tokens = append(tokens, token{string(c), tokInvalid, col})
	}

	return tokens
}
