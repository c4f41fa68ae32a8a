// Package locate resolves the reported position of a syntax-level error
// to the smallest enclosing syntactic construct, so the report can
// highlight an exact token span instead of a whole line.
//
// The line is re-scanned with a forgiving tokenizer: the ideal of
// re-parsing the failing program with a full grammar is unattainable
// (the source is broken by definition), so construct spans are
// recovered from token and bracket structure, the way a human reader
// eyeballs the offending line.
package locate

import (
	"tracewise/internal/capture"
	"tracewise/internal/source"
)

// Resolve correlates a reported (line, col) position inside origin with
// the re-scanned source and returns the syntax location to highlight.
// Col is a 1-based byte column; col 0 means "unknown", which degrades
// to the whole line. When even scanning fails the fallback is a
// whole-line span with node kind "unknown" - resolution never fails.
func Resolve(origin *source.Origin, line, col uint32) capture.SyntaxLocation {
	if origin == nil {
		return capture.SyntaxLocation{Line: line, ColStart: col, ColEnd: col, NodeKind: NodeUnknown}
	}
	text, ok := origin.Line(line)
	if !ok {
		return capture.SyntaxLocation{Origin: origin.Name, Line: line, NodeKind: NodeUnknown}
	}
	return ResolveLine(origin.Name, text, line, col)
}

// ResolveLine is Resolve for callers that only hold the line text.
func ResolveLine(originName, lineText string, line, col uint32) (loc capture.SyntaxLocation) {
	loc = wholeLine(originName, lineText, line)

	// сканер не должен паниковать, но ошибка в нём не должна
	// ронять весь разбор
	defer func() {
		if recover() != nil {
			loc = wholeLine(originName, lineText, line)
		}
	}()

	if col == 0 || int(col) > len(lineText)+1 {
		return loc
	}
	offset := int(col) - 1

	best, ok := smallestCovering(buildNodes(lineText), offset)
	if !ok {
		return loc
	}

	loc.ColStart = uint32(best.start) + 1
	loc.ColEnd = uint32(best.end) + 1
	loc.NodeKind = best.kind
	return loc
}

// Identifiers returns the distinct identifier names on a line, in order
// of first appearance. Used to pick which bindings a report lists.
func Identifiers(lineText string) []string {
	return identifiersIn(lineText)
}

// smallestCovering picks the node with the shortest span covering
// offset. When the offset sits exactly on a boundary between two spans,
// the node that starts at the offset wins over the one that ends there.
func smallestCovering(nodes []node, offset int) (node, bool) {
	var best node
	found := false
	for _, nd := range nodes {
		covers := offset >= nd.start && offset < nd.end
		// граница: смещение сразу за узлом, но другой узел тут начинается
		if !covers {
			continue
		}
		if !found {
			best, found = nd, true
			continue
		}
		if better(nd, best, offset) {
			best = nd
		}
	}
	if found {
		return best, true
	}

	// смещение на границе: предпочитаем узел, который здесь начинается,
	// иначе тот, что здесь заканчивается
	for _, nd := range nodes {
		if nd.start == offset {
			if !found || better(nd, best, offset) {
				best, found = nd, true
			}
		}
	}
	if !found {
		for _, nd := range nodes {
			if nd.end == offset {
				if !found || nd.end-nd.start < best.end-best.start {
					best, found = nd, true
				}
			}
		}
	}
	return best, found
}

func better(a, b node, offset int) bool {
	la, lb := a.end-a.start, b.end-b.start
	if la != lb {
		return la < lb
	}
	// при равной длине выигрывает узел, начинающийся точно на смещении
	if (a.start == offset) != (b.start == offset) {
		return a.start == offset
	}
	return a.start > b.start
}

func wholeLine(originName, lineText string, line uint32) capture.SyntaxLocation {
	loc := capture.SyntaxLocation{
		Origin:   originName,
		Line:     line,
		LineText: lineText,
		NodeKind: NodeUnknown,
	}
	if len(lineText) > 0 {
		loc.ColStart = 1
		loc.ColEnd = uint32(len(lineText)) + 1
	}
	return loc
}
