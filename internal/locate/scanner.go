package locate

// Scanner splits one source line into spanned tokens. It is
// deliberately forgiving: the line being scanned already failed to
// parse in its own runtime, so every byte must end up in some token
// and nothing may abort the scan. Unterminated strings extend to the
// end of the line.

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOpen  // ( [ {
	tokClose // ) ] }
	tokOp    // операторы и прочая пунктуация
)

type token struct {
	kind  tokenKind
	start int // байтовое смещение в строке, включительно
	end   int // не включительно
	text  string
}

func scanLine(line string) []token {
	var toks []token
	i := 0
	n := len(line)
	for i < n {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case isIdentStart(ch):
			start := i
			for i < n && isIdentContinue(line[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, start: start, end: i, text: line[start:i]})
		case isDigit(ch) || (ch == '.' && i+1 < n && isDigit(line[i+1])):
			start := i
			for i < n && isNumberContinue(line[i]) {
				i++
			}
			toks = append(toks, token{kind: tokNumber, start: start, end: i, text: line[start:i]})
		case ch == '"' || ch == '\'':
			start := i
			quote := ch
			i++
			for i < n {
				if line[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if line[i] == quote {
					i++
					break
				}
				i++
			}
			toks = append(toks, token{kind: tokString, start: start, end: i, text: line[start:i]})
		case ch == '(' || ch == '[' || ch == '{':
			toks = append(toks, token{kind: tokOpen, start: i, end: i + 1, text: line[i : i+1]})
			i++
		case ch == ')' || ch == ']' || ch == '}':
			toks = append(toks, token{kind: tokClose, start: i, end: i + 1, text: line[i : i+1]})
			i++
		default:
			start := i
			end := i + 1
			// известные двухсимвольные операторы - один токен
			if i+1 < n && isTwoByteOp(line[i:i+2]) {
				end = i + 2
			}
			toks = append(toks, token{kind: tokOp, start: start, end: end, text: line[start:end]})
			i = end
		}
	}
	return toks
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberContinue(ch byte) bool {
	return isDigit(ch) || ch == '.' || ch == '_' || ch == 'e' || ch == 'E' ||
		ch == 'x' || ch == 'X' || ch == 'o' || ch == 'O' || ch == 'b' || ch == 'B' ||
		ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F' || ch == 'j'
}

func isTwoByteOp(s string) bool {
	switch s {
	case "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"//", "**", "->", ":=", "<<", ">>":
		return true
	}
	return false
}

// identifiersIn returns the distinct identifier names appearing in the
// line, in order of first appearance.
func identifiersIn(line string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range scanLine(line) {
		if tok.kind != tokIdent {
			continue
		}
		if _, ok := seen[tok.text]; ok {
			continue
		}
		seen[tok.text] = struct{}{}
		out = append(out, tok.text)
	}
	return out
}
