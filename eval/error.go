package eval

import "fmt"

// Kind discriminates the ways a formula can fail. Every failure is scoped to
// the one formula that produced it; session assembly never aborts on one.
type Kind uint8

const (
	// KindParse marks a syntax error in the formula text.
	KindParse Kind = iota + 1
	// KindUnknownChannel marks an identifier outside the channel vocabulary.
	KindUnknownChannel
	// KindMixedSources marks a formula referencing both primary and
	// temperature channels, which have independent timestamps.
	KindMixedSources
	// KindDivisionByZero marks a division whose divisor evaluated to zero at
	// some sample.
	KindDivisionByZero
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindUnknownChannel:
		return "unknown channel"
	case KindMixedSources:
		return "mixed sources"
	case KindDivisionByZero:
		return "division by zero"
	default:
		return "unknown error"
	}
}

// Error is a structured formula failure. Pos is the byte offset into the
// formula text where the fault was detected; it is meaningful for parse and
// resolution errors and zero for evaluation faults.
type Error struct {
	Kind   Kind
	Pos    int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
