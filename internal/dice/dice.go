// Package dice parses and rolls dice commands such as "2d6+3", "d20-1" and
// "3 d8". A space before the die marker switches the trace from a sum to a
// list of the individual dice.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

const (
	MinCount = 1
	MaxCount = 100
	MinSides = 2
	MaxSides = 1000
)

// ErrInvalidExpression is matched by every parse or range failure.
var ErrInvalidExpression = errors.New("invalid dice expression")

// ExpressionError reports why a command could not be rolled.
type ExpressionError struct {
	Input  string
	Reason string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid dice expression %q: %s", e.Input, e.Reason)
}

func (e *ExpressionError) Unwrap() error {
	return ErrInvalidExpression
}

// DisplayMode selects how a roll is traced.
type DisplayMode int

const (
	Sum DisplayMode = iota
	List
)

func (m DisplayMode) String() string {
	if m == List {
		return "list"
	}
	return "sum"
}

// Expression is a validated dice command.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
	Mode     DisplayMode
}

var diceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Die", Pattern: `[dD]`},
	{Name: "Sign", Pattern: `[+-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// diceGrammar is [count] d size [(+|-) modifier]. Numbers are captured as
// text so range errors are reported as such instead of as syntax errors.
type diceGrammar struct {
	Count    string `parser:"@Int?"`
	Die      string `parser:"@Die"`
	Sides    string `parser:"@Int"`
	Sign     string `parser:"( @Sign"`
	Modifier string `parser:"  @Int )?"`
}

var diceParser = participle.MustBuild[diceGrammar](
	participle.Lexer(diceLexer),
	participle.Elide("Whitespace"),
)

// Parse validates text against the grammar and the count/size ranges.
func Parse(text string) (Expression, error) {
	raw := strings.TrimSpace(text)
	bad := func(reason string) (Expression, error) {
		return Expression{}, &ExpressionError{Input: raw, Reason: reason}
	}

	ast, err := diceParser.ParseString("", raw)
	if err != nil {
		return bad("bad format")
	}

	sides, err := strconv.Atoi(ast.Sides)
	if err != nil || sides < MinSides || sides > MaxSides {
		return bad("bad die size")
	}

	count := 1
	if ast.Count != "" {
		count, err = strconv.Atoi(ast.Count)
		if err != nil || count < MinCount || count > MaxCount {
			return bad("bad count")
		}
	}

	modifier := 0
	if ast.Sign != "" {
		modifier, err = strconv.Atoi(ast.Sign + ast.Modifier)
		if err != nil {
			return bad("bad format")
		}
	}

	mode := Sum
	// Checked on the untouched text: "3 d8" lists, "3d8" sums.
	if strings.Contains(raw, " d") {
		mode = List
	}

	return Expression{
		Raw:      raw,
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
		Mode:     mode,
	}, nil
}
