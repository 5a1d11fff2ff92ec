package vm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 the marwood authors

*/

import (
	"github.com/ratherlargerobot/marwood/cell"
)

// Transform is a syntax-rules macro transformer: a keyword, an ellipsis
// symbol, a set of literal identifiers and an ordered list of
// (pattern, template) rules. Rule order is trial order at expansion time.
type Transform struct {
	keyword  *cell.Cell
	ellipsis *cell.Cell
	literals []*cell.Cell
	rules    []syntaxRule
}

type syntaxRule struct {
	pattern  *cell.Cell
	template *cell.Cell
}

// NewTransform builds a transformer from a full (define-syntax ...)
// expression, validating the syntax-rules form and every rule pattern.
func NewTransform(expr *cell.Cell) (*Transform, error) {
	v := expr.CollectVec()
	if len(v) != 3 {
		return nil, errInvalidDefineSyntax("expected keyword and syntax-rules")
	}
	keyword, syntaxRules := v[1], v[2]

	// keyword must be a symbol
	if !keyword.IsSymbol() {
		return nil, errInvalidDefineSyntax("keyword must be an identifier")
	}

	// Skip past "syntax-rules"
	head, err := carOf(syntaxRules)
	if err != nil {
		return nil, err
	}
	if !head.IsSymbolNamed("syntax-rules") {
		return nil, errInvalidDefineSyntax("expected syntax-rules")
	}
	if syntaxRules, err = cdrOf(syntaxRules); err != nil {
		return nil, err
	}

	// ellipsis
	ellipsis := cell.Symbol("...")
	next, err := carOf(syntaxRules)
	if err != nil {
		return nil, err
	}
	if next.IsSymbol() {
		ellipsis = next
		if syntaxRules, err = cdrOf(syntaxRules); err != nil {
			return nil, err
		}
	}

	// literals must be a list of symbols
	litList, err := carOf(syntaxRules)
	if err != nil {
		return nil, err
	}
	literals := litList.CollectVec()
	for _, it := range literals {
		if !it.IsSymbol() {
			return nil, errInvalidDefineSyntax("literals must be identifiers")
		}
	}
	if syntaxRules, err = cdrOf(syntaxRules); err != nil {
		return nil, err
	}

	var rules []syntaxRule
	for _, it := range syntaxRules.CollectVec() {
		pattern, err := carOf(it)
		if err != nil {
			return nil, err
		}
		rest, err := cdrOf(it)
		if err != nil {
			return nil, err
		}
		template, err := carOf(rest)
		if err != nil {
			return nil, err
		}
		if err := checkPatternSyntax(pattern, ellipsis, literals); err != nil {
			return nil, err
		}
		if err := checkTemplateSyntax(template, ellipsis, literals); err != nil {
			return nil, err
		}
		rules = append(rules, syntaxRule{pattern: pattern, template: template})
	}

	return &Transform{
		keyword:  keyword,
		ellipsis: ellipsis,
		literals: literals,
		rules:    rules,
	}, nil
}

// Keyword returns the macro keyword cell.
func (t *Transform) Keyword() *cell.Cell {
	return t.keyword
}

// Ellipsis returns the ellipsis symbol in effect for this transformer.
func (t *Transform) Ellipsis() *cell.Cell {
	return t.ellipsis
}

// Literals returns the literal identifiers of this transformer.
func (t *Transform) Literals() []*cell.Cell {
	return t.literals
}

// IsLiteral returns true if c is in the set of literals.
func (t *Transform) IsLiteral(c *cell.Cell) bool {
	for _, it := range t.literals {
		if it.Equal(c) {
			return true
		}
	}
	return false
}

// checkPatternSyntax validates a rule pattern:
//
//   - a pattern variable must not appear more than once in the whole
//     pattern, unless it is a literal or _
//   - an ellipsis may appear at most once per list and must be preceded
//     by a pattern element
//   - an ellipsis cannot be the last element of an improper list
func checkPatternSyntax(pattern *cell.Cell, ellipsis *cell.Cell, literals []*cell.Cell) error {
	if !pattern.IsPair() {
		return errInvalidDefineSyntax("pattern must be a ()")
	}
	var variables []*cell.Cell
	rest, _ := pattern.Cdr()
	return checkPatternList(rest, ellipsis, literals, &variables)
}

func checkPatternList(pattern *cell.Cell, ellipsis *cell.Cell, literals []*cell.Cell, variables *[]*cell.Cell) error {
	if head, ok := pattern.Car(); ok && head.Equal(ellipsis) {
		return errInvalidDefineSyntax("ellipsis out of place")
	}
	improper := pattern.IsImproperList()
	ellipsisInPattern := false
	it := pattern.Iter()
	for {
		p, ok := it.Next()
		if !ok {
			return nil
		}
		switch {
		case p.IsPair():
			if err := checkPatternList(p, ellipsis, literals, variables); err != nil {
				return err
			}
		case p.IsSymbol():
			if containsCell(literals, p) || p.IsSymbolNamed("_") {
				continue
			}
			if p.Equal(ellipsis) {
				_, hasNext := it.Peek()
				if ellipsisInPattern || (improper && !hasNext) {
					return errInvalidDefineSyntax("ellipses out of place")
				}
				ellipsisInPattern = true
				continue
			}
			// All other identifiers must be variables
			if containsCell(*variables, p) {
				return errInvalidDefineSyntax("the pattern variable " + p.String() + " was used more than once")
			}
			*variables = append(*variables, p)
		}
	}
}

// checkTemplateSyntax accepts templates as-is.
func checkTemplateSyntax(_ *cell.Cell, _ *cell.Cell, _ []*cell.Cell) error {
	return nil
}

func containsCell(cells []*cell.Cell, c *cell.Cell) bool {
	for _, it := range cells {
		if it.Equal(c) {
			return true
		}
	}
	return false
}

// findPatternVariables collects every pattern variable of pattern: the
// identifiers which are not literals, not _ and not the ellipsis.
func (t *Transform) findPatternVariables(pattern *cell.Cell, variables *[]*cell.Cell) {
	switch {
	case pattern.IsSymbol():
		if !t.IsLiteral(pattern) && !pattern.IsSymbolNamed("_") && !pattern.Equal(t.ellipsis) {
			*variables = append(*variables, pattern)
		}
	case pattern.IsPair():
		it := pattern.Iter()
		for {
			elem, ok := it.Next()
			if !ok {
				return
			}
			t.findPatternVariables(elem, variables)
		}
	}
}

// Transform expands the input expression with the first rule whose pattern
// matches. An InvalidSyntax error is returned if no rule matches.
func (t *Transform) Transform(expr *cell.Cell) (*cell.Cell, error) {
	if !expr.IsPair() {
		return nil, errInvalidSyntax(t.keyword.String())
	}
	exprArgs, _ := expr.Cdr()
	for _, rule := range t.rules {
		patternArgs, err := cdrOf(rule.pattern)
		if err != nil {
			return nil, err
		}
		var variables []*cell.Cell
		t.findPatternVariables(patternArgs, &variables)
		env := &patternEnvironment{variables: variables}
		if t.patternMatch(patternArgs, exprArgs, env) {
			tracer().Debugf("%v matched rule %v", expr, rule.pattern)
			expanded, ok := t.expand(rule.template, env)
			if !ok {
				return nil, errInvalidSyntax(t.keyword.String())
			}
			return expanded, nil
		}
	}
	return nil, errInvalidSyntax("bad use of " + t.keyword.String())
}

// patternMatch walks pattern elements and expression elements in lockstep.
// If the element following the current pattern element is the ellipsis, the
// current element is in ellipsis mode and is reused until the remaining
// expression elements pair off against the remaining pattern elements.
func (t *Transform) patternMatch(pattern *cell.Cell, expr *cell.Cell, env *patternEnvironment) bool {
	// expr and pattern must either both be lists or improper lists
	if expr.IsPair() && pattern.IsPair() && expr.IsList() != pattern.IsList() {
		return false
	}
	exprIter := expr.Iter()
	patternIter := pattern.Iter()
	pat, ok := patternIter.Next()
	if !ok {
		_, more := exprIter.Peek()
		return !more
	}
	for {
		next, nok := patternIter.Peek()
		inEllipsis := nok && next.Equal(t.ellipsis)

		exprElem, ok := exprIter.Next()
		if !ok {
			return inEllipsis
		}

		switch {
		case pat.IsSymbol():
			env.addBinding(pat, exprElem)
		case pat.IsPair():
			if !t.patternMatch(pat, exprElem, env) {
				return false
			}
		default:
			if !pat.Equal(exprElem) {
				return false
			}
		}

		if inEllipsis {
			// remaining pattern elements minus the ellipsis itself
			patternLen := patternIter.Len() - 1
			exprLen := exprIter.Len()
			if exprLen == patternLen {
				patternIter.Next() // consume the ellipsis
				if pat, ok = patternIter.Next(); !ok {
					_, more := exprIter.Peek()
					return !more
				}
			}
		} else {
			if pat, ok = patternIter.Next(); !ok {
				_, more := exprIter.Peek()
				return !more
			}
		}
	}
}

// expand walks the template, emitting pattern-variable bindings and
// verbatim atoms. A template element followed by the ellipsis expands
// repeatedly until its bindings are exhausted.
func (t *Transform) expand(template *cell.Cell, env *patternEnvironment) (*cell.Cell, bool) {
	switch {
	case template.IsSymbol():
		if env.isVariable(template) {
			return env.getBinding(template)
		}
		return template, true
	case template.IsPair():
		var v []*cell.Cell
		templateIter := template.Iter()
		tmpl, ok := templateIter.Next()
		if !ok {
			return cell.Nil(), true
		}
		for {
			next, nok := templateIter.Peek()
			inEllipsis := nok && next.Equal(t.ellipsis)
			if c, expanded := t.expand(tmpl, env); expanded {
				v = append(v, c)
				if inEllipsis {
					continue
				}
			} else {
				if !inEllipsis {
					return nil, false
				}
				templateIter.Next() // consume the ellipsis
			}
			if tmpl, ok = templateIter.Next(); !ok {
				break
			}
		}
		return cell.List(v...), true
	}
	return template, true
}

// --- Pattern environment ----------------------------------------------------

// patternEnvironment is the result of a successful pattern match: the
// matched (pattern, expression) bindings in encounter order, plus the set
// of pattern variables of the rule being tried. Bindings are consumed as
// the template emits them, which is what terminates ellipsis-driven
// repetition.
type patternEnvironment struct {
	bindings  []patternBinding
	variables []*cell.Cell
}

type patternBinding struct {
	pattern *cell.Cell
	expr    *cell.Cell
}

func (env *patternEnvironment) addBinding(pattern *cell.Cell, expr *cell.Cell) {
	env.bindings = append(env.bindings, patternBinding{pattern: pattern, expr: expr})
}

// getBinding removes and returns the first binding for pattern.
func (env *patternEnvironment) getBinding(pattern *cell.Cell) (*cell.Cell, bool) {
	for i, it := range env.bindings {
		if it.pattern.Equal(pattern) {
			env.bindings = append(env.bindings[:i], env.bindings[i+1:]...)
			return it.expr, true
		}
	}
	return nil, false
}

func (env *patternEnvironment) isVariable(c *cell.Cell) bool {
	return containsCell(env.variables, c)
}
