/*
Copyright (C) 2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package fib

/*
	STATEMENTS        ← (DEFINITION / EXPRESSION)*
	DEFINITION        ← 'def' Identifier '(' Identifier ')' EXPRESSION
	EXPRESSION        ← TERNARY
	TERNARY           ← CONDITION ('?' EXPRESSION ':' EXPRESSION)?
	CONDITION         ← INFIX (ConditionOperator INFIX)?
	INFIX             ← CALL (InfixOperator CALL)*
	CALL              ← PRIMARY ('(' EXPRESSION ')')?
	PRIMARY           ← FOR / Identifier / '(' EXPRESSION ')' / Number
	FOR               ← 'for' Identifier 'from' Number 'to' Number EXPRESSION

	ConditionOperator ← '<'
	InfixOperator     ← '+' / '-'
	Identifier        ← !Keyword [a-zA-Z][a-zA-Z0-9_]*
	Number            ← [0-9]+
	Keyword           ← ('def' / 'for' / 'from' / 'to') !word

	word characters are letters, digits and '_'; every token must start and
	end on a word break, so def1 and to_x are identifiers and to10 is no
	keyword followed by a number.
*/

import (
	"sort"
	"strconv"
	"strings"
	"unsafe"

	packrat "github.com/launix-de/go-packrat"
)

const msgUnexpectedEOF = "syntax error, unexpected end of input"

var Keywords = []string{"def", "for", "from", "to"}

var identifierPattern = notWords(Keywords)

// rule tags the node of its inner parser so the AST builder can find it
type rule struct {
	name  string
	inner packrat.Parser
	build func(g *grammar, m *packrat.Node) *Node
}

func (r *rule) Match(s *packrat.Scanner) *packrat.Node {
	m := r.inner.Match(s)
	if m == nil {
		return nil
	}
	return &packrat.Node{Matched: m.Matched, Parser: r, Children: []*packrat.Node{m}}
}

func (r *rule) String() string {
	return r.name
}

// terminal remembers the end of the farthest token ever matched; that is
// where a failed parse got stuck.
type terminal struct {
	p packrat.Parser
	g *grammar
}

func (t *terminal) Match(s *packrat.Scanner) *packrat.Node {
	m := t.p.Match(s)
	if m != nil {
		if end := t.g.end(m); end > t.g.farthest {
			t.g.farthest = end
		}
	}
	return m
}

type grammar struct {
	src      string
	lines    []int // offsets of line starts
	farthest int
	errs     Diagnostics
	start    packrat.Parser
}

func newGrammar(src string) *grammar {
	g := &grammar{src: src, lines: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			g.lines = append(g.lines, i+1)
		}
	}
	atom := func(s string) packrat.Parser {
		return &terminal{packrat.NewAtomParser(s, false, true), g}
	}
	regex := func(s string) packrat.Parser {
		return &terminal{packrat.NewRegexParser(s, false, true), g}
	}
	keyword := atom // the scanner rejects matches that do not end on a word break

	// rules are created first so they can refer to each other
	expression := &rule{name: "TERNARY"}
	condition := &rule{name: "CONDITION"}
	infix := &rule{name: "INFIX"}
	call := &rule{name: "CALL"}
	primary := &rule{name: "PRIMARY"}
	forLoop := &rule{name: "FOR"}
	definition := &rule{name: "DEFINITION"}
	statements := &rule{name: "STATEMENTS"}
	identifier := &rule{name: "Identifier", inner: regex(identifierPattern), build: buildToken(Identifier)}
	number := &rule{name: "Number", inner: regex(`[0-9]+`), build: buildNumber}
	conditionOperator := &rule{name: "ConditionOperator", inner: atom("<"), build: buildToken(Operator)}
	infixOperator := &rule{name: "InfixOperator", inner: packrat.NewOrParser(atom("+"), atom("-")), build: buildToken(Operator)}

	item := packrat.NewOrParser(definition, expression)
	statements.inner = packrat.NewKleeneParser(item, packrat.NewEmptyParser())
	statements.build = func(g *grammar, m *packrat.Node) *Node {
		result := g.node(Statements, m)
		for _, c := range m.Children {
			if c.Parser == item {
				result.Nodes = append(result.Nodes, g.build(c.Children[0]))
			}
		}
		return result
	}

	definition.inner = packrat.NewAndParser(keyword("def"), identifier, atom("("), identifier, atom(")"), expression)
	definition.build = func(g *grammar, m *packrat.Node) *Node {
		return g.node(Definition, m, g.build(m.Children[1]), g.build(m.Children[3]), g.build(m.Children[5]))
	}

	branches := packrat.NewAndParser(atom("?"), expression, atom(":"), expression)
	expression.inner = packrat.NewAndParser(condition, packrat.NewMaybeParser(branches))
	expression.build = func(g *grammar, m *packrat.Node) *Node {
		result := g.node(Ternary, m, g.build(m.Children[0]))
		if opt := m.Children[1]; len(opt.Children) > 0 {
			b := opt.Children[0]
			result.Nodes = append(result.Nodes, g.build(b.Children[1]), g.build(b.Children[3]))
		}
		return result
	}

	comparison := packrat.NewAndParser(conditionOperator, infix)
	condition.inner = packrat.NewAndParser(infix, packrat.NewMaybeParser(comparison))
	condition.build = func(g *grammar, m *packrat.Node) *Node {
		result := g.node(Condition, m, g.build(m.Children[0]))
		if opt := m.Children[1]; len(opt.Children) > 0 {
			c := opt.Children[0]
			result.Nodes = append(result.Nodes, g.build(c.Children[0]), g.build(c.Children[1]))
		}
		return result
	}

	tail := packrat.NewAndParser(infixOperator, call)
	infix.inner = packrat.NewAndParser(call, packrat.NewKleeneParser(tail, packrat.NewEmptyParser()))
	infix.build = func(g *grammar, m *packrat.Node) *Node {
		result := g.node(Infix, m, g.build(m.Children[0]))
		for _, c := range m.Children[1].Children {
			if c.Parser == tail {
				result.Nodes = append(result.Nodes, g.build(c.Children[0]), g.build(c.Children[1]))
			}
		}
		return result
	}

	argument := packrat.NewAndParser(atom("("), expression, atom(")"))
	call.inner = packrat.NewAndParser(primary, packrat.NewMaybeParser(argument))
	call.build = func(g *grammar, m *packrat.Node) *Node {
		result := g.node(Call, m, g.build(m.Children[0]))
		if opt := m.Children[1]; len(opt.Children) > 0 {
			result.Nodes = append(result.Nodes, g.build(opt.Children[0].Children[1]))
		}
		return result
	}

	parens := packrat.NewAndParser(atom("("), expression, atom(")"))
	primary.inner = packrat.NewOrParser(forLoop, identifier, parens, number)
	primary.build = func(g *grammar, m *packrat.Node) *Node {
		chosen := m.Children[0]
		if chosen.Parser == parens {
			return g.build(chosen.Children[1])
		}
		return g.build(chosen)
	}

	forLoop.inner = packrat.NewAndParser(keyword("for"), identifier, keyword("from"), number, keyword("to"), number, expression)
	forLoop.build = func(g *grammar, m *packrat.Node) *Node {
		return g.node(For, m, g.build(m.Children[1]), g.build(m.Children[3]), g.build(m.Children[5]), g.build(m.Children[6]))
	}

	g.start = packrat.NewAndParser(statements, packrat.NewEndParser(true))
	return g
}

// Parse turns source text into the raw AST: every TERNARY, CONDITION, INFIX
// and CALL produces a node, even with a single child. See Optimize.
func Parse(src string) (*Node, error) {
	g := newGrammar(src)
	m, perr := packrat.Parse(g.start, packrat.NewScanner(src, true))
	if perr != nil {
		return nil, Diagnostics{g.unexpected(g.farthest)}
	}
	ast := g.build(m.Children[0])
	if len(g.errs) > 0 {
		return nil, g.errs
	}
	return ast, nil
}

func (g *grammar) build(m *packrat.Node) *Node {
	r, ok := m.Parser.(*rule)
	if !ok {
		panic("fib: grammar node without rule: " + m.Matched)
	}
	return r.build(g, m.Children[0])
}

// offset of the first non-blank byte of m
func (g *grammar) begin(m *packrat.Node) int {
	if off, ok := g.offset(m.Matched); ok {
		return g.skip(off)
	}
	return 0
}

func (g *grammar) end(m *packrat.Node) int {
	if off, ok := g.offset(m.Matched); ok {
		return off + len(m.Matched)
	}
	return 0
}

// offset locates a match in the source. The scanner hands out slices of
// the input string, never copies, so the distance of the data pointers is
// the byte offset.
func (g *grammar) offset(matched string) (int, bool) {
	if matched == "" || g.src == "" {
		return 0, false
	}
	off := int(uintptr(unsafe.Pointer(unsafe.StringData(matched))) - uintptr(unsafe.Pointer(unsafe.StringData(g.src))))
	if off < 0 || off+len(matched) > len(g.src) {
		return 0, false
	}
	return off, true
}

func (g *grammar) skip(offset int) int {
	for offset < len(g.src) && strings.IndexByte(" \t\r\n", g.src[offset]) >= 0 {
		offset++
	}
	return offset
}

func (g *grammar) position(offset int) (line, col int) {
	line = sort.Search(len(g.lines), func(i int) bool { return g.lines[i] > offset })
	col = offset - g.lines[line-1] + 1
	return
}

func (g *grammar) node(kind Kind, m *packrat.Node, children ...*Node) *Node {
	n := &Node{Kind: kind, Nodes: children}
	n.Line, n.Col = g.position(g.begin(m))
	return n
}

func (g *grammar) unexpected(offset int) ParseError {
	offset = g.skip(offset)
	line, col := g.position(offset)
	if offset >= len(g.src) {
		return ParseError{line, col, msgUnexpectedEOF}
	}
	end := offset + 1
	for end < len(g.src) && isWordByte(g.src[offset]) && isWordByte(g.src[end]) {
		end++
	}
	return ParseError{line, col, "syntax error, unexpected '" + g.src[offset:end] + "'"}
}

func buildToken(kind Kind) func(g *grammar, m *packrat.Node) *Node {
	return func(g *grammar, m *packrat.Node) *Node {
		n := g.node(kind, m)
		n.Token = strings.TrimSpace(m.Matched)
		return n
	}
}

func buildNumber(g *grammar, m *packrat.Node) *Node {
	n := buildToken(Number)(g, m)
	if _, err := strconv.ParseInt(n.Token, 10, 64); err != nil {
		g.errs = append(g.errs, ParseError{n.Line, n.Col, "number out of range: " + n.Token})
	}
	return n
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

const wordBytes = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// notWords builds a regexp for [a-zA-Z][a-zA-Z0-9_]* that rejects exactly
// the given words. RE2 has no negative lookahead, so the complement is
// spelled out along a trie of the words.
func notWords(words []string) string {
	root := &trie{}
	for _, w := range words {
		root.insert(w)
	}
	return "(?:" + root.complement(letterBytes, true) + `)\b`
}

type trie struct {
	next map[byte]*trie
	word bool
}

func (t *trie) insert(w string) {
	if w == "" {
		t.word = true
		return
	}
	if t.next == nil {
		t.next = make(map[byte]*trie)
	}
	child, ok := t.next[w[0]]
	if !ok {
		child = &trie{}
		t.next[w[0]] = child
	}
	child.insert(w[1:])
}

// complement matches every continuation from t that does not end on a word;
// allowed are the bytes that may come next.
func (t *trie) complement(allowed string, root bool) string {
	var alts []string
	if !root && !t.word {
		alts = append(alts, "")
	}
	keys := make([]byte, 0, len(t.next))
	for c := range t.next {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, c := range keys {
		alts = append(alts, string(c)+"(?:"+t.next[c].complement(wordBytes, false)+")")
	}
	var class strings.Builder
	for i := 0; i < len(allowed); i++ {
		if _, taken := t.next[allowed[i]]; !taken {
			class.WriteByte(allowed[i])
		}
	}
	if class.Len() > 0 {
		alts = append(alts, "["+class.String()+"][0-9A-Za-z_]*")
	}
	return strings.Join(alts, "|")
}
