package locate

// Construct-kind labels are human-neutral: the message catalog embeds
// them verbatim inside localized sentences.
const (
	NodeFunctionCall      = "function call"
	NodeIndexExpression   = "index expression"
	NodeCollectionLiteral = "collection literal"
	NodeGrouping          = "grouping"
	NodeAssignmentTarget  = "assignment target"
	NodeIdentifier        = "identifier"
	NodeNumberLiteral     = "number literal"
	NodeStringLiteral     = "string literal"
	NodeOperator          = "operator"
	NodeStatement         = "statement"
	NodeUnknown           = "unknown"
)

// node is one syntactic construct recovered from a line, spanning
// [start, end) bytes within that line.
type node struct {
	kind  string
	start int
	end   int
}

// buildNodes recovers a flat list of nested construct spans from the
// token stream of one line. The list is not a tree structurally, but
// span containment makes it one: the resolver just picks the smallest
// span covering an offset.
func buildNodes(line string) []node {
	toks := scanLine(line)
	if len(toks) == 0 {
		return nil
	}

	nodes := make([]node, 0, len(toks)+4)

	groups, paired := bracketNodes(toks)

	// листовые конструкции; непарная скобка остаётся самостоятельным
	// листом, парная растворяется в своей группе
	for idx, tok := range toks {
		switch tok.kind {
		case tokIdent:
			nodes = append(nodes, node{kind: NodeIdentifier, start: tok.start, end: tok.end})
		case tokNumber:
			nodes = append(nodes, node{kind: NodeNumberLiteral, start: tok.start, end: tok.end})
		case tokString:
			nodes = append(nodes, node{kind: NodeStringLiteral, start: tok.start, end: tok.end})
		case tokOp:
			nodes = append(nodes, node{kind: NodeOperator, start: tok.start, end: tok.end})
		case tokOpen, tokClose:
			if _, ok := paired[idx]; !ok {
				nodes = append(nodes, node{kind: NodeOperator, start: tok.start, end: tok.end})
			}
		}
	}

	nodes = append(nodes, groups...)

	if target, ok := assignmentTarget(toks); ok {
		nodes = append(nodes, target)
	}

	// вся строка как утверждение
	first, last := toks[0], toks[len(toks)-1]
	nodes = append(nodes, node{kind: NodeStatement, start: first.start, end: last.end})

	return nodes
}

// bracketNodes pairs brackets with a stack and classifies each group.
// A group opened right after an identifier, a closing bracket, or a
// string is a call (for parentheses) or an indexing operation (for
// square brackets); anything else is grouping or a collection literal.
func bracketNodes(toks []token) ([]node, map[int]struct{}) {
	type open struct {
		tokIdx int
		callee int // байтовое смещение начала callee, -1 если нет
	}
	var stack []open
	var out []node
	paired := make(map[int]struct{})

	for idx, tok := range toks {
		switch tok.kind {
		case tokOpen:
			callee := -1
			if idx > 0 {
				prev := toks[idx-1]
				adjacent := prev.end == tok.start
				if adjacent && (prev.kind == tokIdent || prev.kind == tokClose || prev.kind == tokString) {
					callee = prev.start
				}
			}
			stack = append(stack, open{tokIdx: idx, callee: callee})
		case tokClose:
			if len(stack) == 0 {
				continue // непарная закрывающая скобка
			}
			op := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opener := toks[op.tokIdx]
			if !matchingBracket(opener.text, tok.text) {
				continue
			}
			paired[op.tokIdx] = struct{}{}
			paired[idx] = struct{}{}
			out = append(out, classifyGroup(opener, tok, op.callee))
		}
	}
	return out, paired
}

func classifyGroup(opener, closer token, callee int) node {
	switch opener.text {
	case "(":
		if callee >= 0 {
			return node{kind: NodeFunctionCall, start: callee, end: closer.end}
		}
		return node{kind: NodeGrouping, start: opener.start, end: closer.end}
	case "[":
		if callee >= 0 {
			return node{kind: NodeIndexExpression, start: callee, end: closer.end}
		}
		return node{kind: NodeCollectionLiteral, start: opener.start, end: closer.end}
	default: // "{"
		return node{kind: NodeCollectionLiteral, start: opener.start, end: closer.end}
	}
}

func matchingBracket(open, close string) bool {
	switch open {
	case "(":
		return close == ")"
	case "[":
		return close == "]"
	case "{":
		return close == "}"
	}
	return false
}

// UnclosedBracket returns the last opening bracket on the line that was
// never closed, if any.
func UnclosedBracket(line string) (string, bool) {
	var stack []string
	for _, tok := range scanLine(line) {
		switch tok.kind {
		case tokOpen:
			stack = append(stack, tok.text)
		case tokClose:
			if len(stack) > 0 && matchingBracket(stack[len(stack)-1], tok.text) {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

// assignmentTarget finds a top-level single "=" and returns the span of
// everything before it.
func assignmentTarget(toks []token) (node, bool) {
	depth := 0
	for idx, tok := range toks {
		switch tok.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokOp:
			if depth == 0 && tok.text == "=" && idx > 0 {
				return node{
					kind:  NodeAssignmentTarget,
					start: toks[0].start,
					end:   toks[idx-1].end,
				}, true
			}
		}
	}
	return node{}, false
}
