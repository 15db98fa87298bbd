package amount

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

var (
	// a signed term of an expression such as "2D6+D3-1"
	termRegex = regexp.MustCompile(`[+-]?[^+-]+`)
	// "D6", "2D3"
	diceRegex = regexp.MustCompile(`^(\d*)D(\d+)$`)
	// "2..5", an explicit uniform range
	rangeRegex = regexp.MustCompile(`^(\d+(?:/\d+)?)\.\.(\d+(?:/\d+)?)$`)
)

// Parse reads an amount written in dice notation. Supported terms are plain
// numbers ("3", "7/2", "1.5"), dice ("D6", "2D3") and explicit ranges ("2..5"),
// joined with + and -. Only constants may be subtracted.
func Parse(notation string) (Amount, error) {
	expr := strings.ToUpper(strings.Join(strings.Fields(notation), ""))
	if expr == "" {
		return Amount{}, errors.InvalidArgument("dice notation is empty").WithReason(ReasonInvalidNotation)
	}

	terms := termRegex.FindAllString(expr, -1)
	if strings.Join(terms, "") != expr {
		return Amount{}, errors.InvalidArgumentf("invalid dice notation: %s", notation).WithReason(ReasonInvalidNotation)
	}

	var result Amount
	for _, term := range terms {
		amt, err := parseTerm(strings.TrimLeft(term, "+-"), strings.HasPrefix(term, "-"))
		if err != nil {
			return Amount{}, errors.Wrapf(err, "invalid dice notation: %s", notation)
		}
		if len(terms) == 1 {
			return amt, nil
		}
		result = result.Add(amt)
	}

	return result, nil
}

func parseTerm(body string, negative bool) (Amount, error) {
	if m := diceRegex.FindStringSubmatch(body); m != nil {
		if negative {
			return Amount{}, errors.InvalidArgumentf("dice %s cannot be subtracted", body).WithReason(ReasonInvalidNotation)
		}
		count := int64(1)
		if m[1] != "" {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return Amount{}, errors.InvalidArgumentf("invalid dice count %s", m[1]).WithReason(ReasonInvalidNotation)
			}
			count = n
		}
		sides, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return Amount{}, errors.InvalidArgumentf("invalid die size %s", m[2]).WithReason(ReasonInvalidNotation)
		}
		die, err := Die(sides)
		if err != nil {
			return Amount{}, err
		}
		if count == 1 {
			return die, nil
		}
		return die.Scale(count)
	}

	if m := rangeRegex.FindStringSubmatch(body); m != nil {
		if negative {
			return Amount{}, errors.InvalidArgumentf("range %s cannot be subtracted", body).WithReason(ReasonInvalidNotation)
		}
		start, _ := new(big.Rat).SetString(m[1])
		stop, _ := new(big.Rat).SetString(m[2])
		return NewRat(start, stop)
	}

	r, ok := new(big.Rat).SetString(body)
	if !ok {
		return Amount{}, errors.InvalidArgumentf("unrecognised term %q", body).WithReason(ReasonInvalidNotation)
	}
	if negative {
		r.Neg(r)
	}
	return FixedRat(r), nil
}

// String renders the amount in the notation read by Parse. Repeated dice are
// grouped ("2D3") and constants are summed into one trailing term.
func (a Amount) String() string {
	if a.IsSimple() {
		return formatSimple(a)
	}

	var (
		order    []string
		counts   = make(map[string]int)
		constant = new(big.Rat)
		haveDice bool
	)
	for _, part := range a.parts {
		if part.IsFixed() {
			constant.Add(constant, part.start)
			continue
		}
		haveDice = true
		key := formatSimple(part)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	if !haveDice {
		return constant.RatString()
	}

	terms := make([]string, 0, len(order))
	for _, key := range order {
		n := counts[key]
		switch {
		case n == 1:
			terms = append(terms, key)
		case strings.HasPrefix(key, "D"):
			terms = append(terms, fmt.Sprintf("%d%s", n, key))
		default:
			for i := 0; i < n; i++ {
				terms = append(terms, key)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(terms, "+"))
	switch constant.Sign() {
	case 1:
		sb.WriteString("+" + constant.RatString())
	case -1:
		sb.WriteString(constant.RatString())
	}
	return sb.String()
}

func formatSimple(a Amount) string {
	if a.start.Cmp(a.stop) == 0 {
		return a.start.RatString()
	}
	if a.start.Cmp(big.NewRat(1, 1)) == 0 && a.stop.IsInt() {
		return "D" + a.stop.RatString()
	}
	return a.start.RatString() + ".." + a.stop.RatString()
}

// MarshalText implements encoding.TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
