// Package peg interprets a small set of compiled grammar expressions
// against a character slice: terminals, ranges, Unicode-predicate classes,
// sequence, prioritised choice, the four repetition forms, negative
// lookahead, nonterminal reference, and the Mark/Check back-reference pair
// used for raw-string hash balancing and frontmatter fence balancing.
//
// The evaluator is total: every expression yields Success or Failure, never
// an error. Ordered choice is committed — once an alternative succeeds, no
// later backtracking past that choice occurs, and repetitions never
// backtrack once they stop matching.
package peg

// ClassKind names one of the built-in single-character terminal classes.
type ClassKind int

const (
	ClassAny ClassKind = iota
	ClassDoublequote
	ClassBackslash
	ClassLF
	ClassTab
	ClassPatternWhiteSpace
	ClassXidStart
	ClassXidContinue
	ClassEndOfInput
	ClassEmpty
)

// Expr is a compiled grammar expression. Values are built with the
// constructor functions below and composed into a Grammar; they are never
// implemented outside this package.
type Expr interface {
	eval(st *state, pos int) (ok bool, consumed int, elab Elaboration)
}

// Capture is a single match of a named nonterminal: the text it consumed
// and, recursively, the named children that contributed to that match.
type Capture struct {
	Text     []rune
	Children Elaboration
}

// Elaboration records, for each named nonterminal that participated in a
// match, the ordered list of its matches. A nonterminal absent from the map
// did not participate.
type Elaboration map[string][]Capture

func cloneElab(e Elaboration) Elaboration {
	if e == nil {
		return nil
	}
	out := make(Elaboration, len(e))
	for k, v := range e {
		cp := make([]Capture, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func mergeElab(dst, src Elaboration) Elaboration {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = Elaboration{}
	}
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
	return dst
}

type litExpr struct{ text []rune }

// Lit matches the literal string s exactly.
func Lit(s string) Expr {
	return litExpr{text: []rune(s)}
}

type rangeExpr struct{ lo, hi rune }

// RuneRange matches a single character in the inclusive range [lo,hi].
func RuneRange(lo, hi rune) Expr {
	return rangeExpr{lo: lo, hi: hi}
}

type classExpr struct{ kind ClassKind }

// Class matches one of the built-in single-character terminal classes.
func Class(kind ClassKind) Expr {
	return classExpr{kind: kind}
}

type seqExpr struct{ exprs []Expr }

// Seq matches each of exprs in order on the successive remainders.
func Seq(exprs ...Expr) Expr {
	return seqExpr{exprs: exprs}
}

type choiceExpr struct{ exprs []Expr }

// Choice tries each of exprs in order at the original position and commits
// to the first success.
func Choice(exprs ...Expr) Expr {
	return choiceExpr{exprs: exprs}
}

type optExpr struct{ e Expr }

// Opt matches e or, failing that, matches nothing (e?).
func Opt(e Expr) Expr {
	return optExpr{e: e}
}

type starExpr struct{ e Expr }

// Star matches e zero or more times, greedily, without backtracking (e*).
func Star(e Expr) Expr {
	return starExpr{e: e}
}

type plusExpr struct{ e Expr }

// Plus matches e one or more times, greedily (e+ = e ~ e*).
func Plus(e Expr) Expr {
	return plusExpr{e: e}
}

type boundedExpr struct {
	e Expr
	n int
}

// Bounded matches e up to n times, greedily (e{0,n}).
func Bounded(e Expr, n int) Expr {
	return boundedExpr{e: e, n: n}
}

type notExpr struct{ e Expr }

// Not is negative lookahead: succeeds consuming zero characters iff e would
// fail here (!e).
func Not(e Expr) Expr {
	return notExpr{e: e}
}

type refExpr struct{ name string }

// Ref refers to a nonterminal by name; its match appears in the enclosing
// elaboration as a named child.
func Ref(name string) Expr {
	return refExpr{name: name}
}

type markExpr struct {
	id string
	e  Expr
}

// Mark evaluates e; on success, while the enclosing token-kind attempt is
// active, binds id to the characters e consumed.
func Mark(id string, e Expr) Expr {
	return markExpr{id: id, e: e}
}

type checkExpr struct {
	id string
	e  Expr
}

// Check evaluates e; the result is a success only when e's consumed
// characters equal id's current binding and that binding exists.
func Check(id string, e Expr) Expr {
	return checkExpr{id: id, e: e}
}

func (x litExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	chars := st.chars
	n := len(x.text)
	if pos+n > len(chars) {
		return false, 0, nil
	}
	for i := 0; i < n; i++ {
		if chars[pos+i] != x.text[i] {
			return false, 0, nil
		}
	}
	return true, n, nil
}

func (x rangeExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	if pos >= len(st.chars) {
		return false, 0, nil
	}
	r := st.chars[pos]
	if r < x.lo || r > x.hi {
		return false, 0, nil
	}
	return true, 1, nil
}

func (x classExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	switch x.kind {
	case ClassEmpty:
		return true, 0, nil
	case ClassEndOfInput:
		return pos >= len(st.chars), 0, nil
	}
	if pos >= len(st.chars) {
		return false, 0, nil
	}
	r := st.chars[pos]
	var match bool
	switch x.kind {
	case ClassAny:
		match = true
	case ClassDoublequote:
		match = r == '"'
	case ClassBackslash:
		match = r == '\\'
	case ClassLF:
		match = r == '\n'
	case ClassTab:
		match = r == '\t'
	case ClassPatternWhiteSpace:
		match = st.isPatternWhiteSpace(r)
	case ClassXidStart:
		match = st.isXIDStart(r)
	case ClassXidContinue:
		match = st.isXIDContinue(r)
	default:
		match = false
	}
	if !match {
		return false, 0, nil
	}
	return true, 1, nil
}

func (x seqExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	total := 0
	var elab Elaboration
	for _, e := range x.exprs {
		ok, n, childElab := e.eval(st, pos+total)
		if !ok {
			return false, 0, nil
		}
		total += n
		elab = mergeElab(elab, childElab)
	}
	return true, total, elab
}

func (x choiceExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	for _, e := range x.exprs {
		snapshot := st.snapshotMarks()
		ok, n, elab := e.eval(st, pos)
		if ok {
			return true, n, elab
		}
		st.restoreMarks(snapshot)
	}
	return false, 0, nil
}

func (x optExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	snapshot := st.snapshotMarks()
	ok, n, elab := x.e.eval(st, pos)
	if ok {
		return true, n, elab
	}
	st.restoreMarks(snapshot)
	return true, 0, nil
}

func (x starExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	total := 0
	var elab Elaboration
	for {
		snapshot := st.snapshotMarks()
		ok, n, childElab := x.e.eval(st, pos+total)
		if !ok || n == 0 {
			st.restoreMarks(snapshot)
			break
		}
		total += n
		elab = mergeElab(elab, childElab)
	}
	return true, total, elab
}

func (x plusExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	ok, n, elab := x.e.eval(st, pos)
	if !ok {
		return false, 0, nil
	}
	total := n
	for {
		snapshot := st.snapshotMarks()
		ok2, n2, childElab := x.e.eval(st, pos+total)
		if !ok2 || n2 == 0 {
			st.restoreMarks(snapshot)
			break
		}
		total += n2
		elab = mergeElab(elab, childElab)
	}
	return true, total, elab
}

func (x boundedExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	total := 0
	var elab Elaboration
	for i := 0; i < x.n; i++ {
		snapshot := st.snapshotMarks()
		ok, n, childElab := x.e.eval(st, pos+total)
		if !ok || n == 0 {
			st.restoreMarks(snapshot)
			break
		}
		total += n
		elab = mergeElab(elab, childElab)
	}
	return true, total, elab
}

func (x notExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	snapshot := st.snapshotMarks()
	ok, _, _ := x.e.eval(st, pos)
	st.restoreMarks(snapshot)
	if ok {
		return false, 0, nil
	}
	return true, 0, nil
}

func (x refExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	def := st.grammar.rule(x.name)
	if def == nil {
		panic("peg: reference to undefined nonterminal " + x.name)
	}
	ok, n, childElab := def.eval(st, pos)
	if !ok {
		return false, 0, nil
	}
	c := Capture{Text: append([]rune(nil), st.chars[pos:pos+n]...), Children: childElab}
	return true, n, Elaboration{x.name: []Capture{c}}
}

func (x markExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	ok, n, elab := x.e.eval(st, pos)
	if !ok {
		return false, 0, nil
	}
	st.setMark(x.id, st.chars[pos:pos+n])
	return true, n, elab
}

func (x checkExpr) eval(st *state, pos int) (bool, int, Elaboration) {
	ok, n, _ := x.e.eval(st, pos)
	if !ok {
		return false, 0, nil
	}
	bound, has := st.getMark(x.id)
	if !has {
		return false, 0, nil
	}
	got := st.chars[pos : pos+n]
	if !runesEqual(got, bound) {
		return false, 0, nil
	}
	return true, n, nil
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

