package dice

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Source returns a uniformly distributed value in [0,1).
type Source func() float64

// NewSource returns a deterministic source for seed.
func NewSource(seed uint64) Source {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return r.Float64
}

// Fixed cycles through values forever. Useful for replaying known rolls.
func Fixed(values ...float64) Source {
	i := 0
	return func() float64 {
		if len(values) == 0 {
			return 0
		}
		v := values[i%len(values)]
		i++
		return v
	}
}

// RollResult is the outcome of one roll. It is never recomputed.
type RollResult struct {
	Rolls    []int
	Sum      int
	Modifier int
	Total    int
	Mode     DisplayMode
}

// Roll draws expr.Count dice from src.
func Roll(expr Expression, src Source) RollResult {
	res := RollResult{
		Rolls:    make([]int, expr.Count),
		Modifier: expr.Modifier,
		Mode:     expr.Mode,
	}
	for i := range res.Rolls {
		v := int(src()*float64(expr.Sides)) + 1
		res.Rolls[i] = min(max(v, 1), expr.Sides)
		res.Sum += res.Rolls[i]
	}
	res.Total = res.Sum + res.Modifier
	return res
}

// RollCommand parses text and rolls it. Nothing is rolled on error.
func RollCommand(text string, src Source) (RollResult, error) {
	expr, err := Parse(text)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(expr, src), nil
}

// String renders the roll trace:
//
//	list:        [3], [5] = 8 +2 = 10
//	sum, 1 die:  12 (10 +2)
//	sum, dice:   10 (3 + 5 = 8 +2)
func (r RollResult) String() string {
	rolls := make([]string, len(r.Rolls))
	for i, v := range r.Rolls {
		rolls[i] = strconv.Itoa(v)
	}

	if r.Mode == List {
		if r.Modifier != 0 {
			return fmt.Sprintf("[%s] = %d %+d = %d", strings.Join(rolls, "], ["), r.Sum, r.Modifier, r.Total)
		}
		return fmt.Sprintf("[%s] = %d", strings.Join(rolls, "], ["), r.Sum)
	}

	if len(r.Rolls) == 1 {
		if r.Modifier != 0 {
			return fmt.Sprintf("%d (%d %+d)", r.Total, r.Rolls[0], r.Modifier)
		}
		return strconv.Itoa(r.Total)
	}
	if r.Modifier != 0 {
		return fmt.Sprintf("%d (%s = %d %+d)", r.Total, strings.Join(rolls, " + "), r.Sum, r.Modifier)
	}
	return fmt.Sprintf("%d (%s)", r.Total, strings.Join(rolls, " + "))
}
