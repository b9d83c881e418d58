package geotag

import (
	"fmt"
	"math"
	"strings"
)

// Number is one component of a raw GPS value: either a Rational or an Integer.
type Number interface {
	Float() float64
}

// Rational is an unsigned EXIF RATIONAL (numerator / denominator).
type Rational struct {
	Num int64
	Den int64
}

// Float returns Num/Den. A zero denominator yields NaN.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return math.NaN()
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Integer is a plain integral EXIF value (BYTE, SHORT, LONG).
type Integer int64

// Float returns the integer as a float64.
func (i Integer) Float() float64 {
	return float64(i)
}

type valueKind uint8

const (
	kindText valueKind = iota + 1
	kindNumbers
)

// Value is the raw content of one GPS field: a reference string/code or a
// sequence of numbers (a sexagesimal triple, a single altitude, ...).
type Value struct {
	kind    valueKind
	text    string
	numbers []Number
}

// TextValue wraps an ASCII field such as "N" or "E".
func TextValue(s string) Value {
	return Value{kind: kindText, text: s}
}

// NumberValue wraps one or more numeric components.
func NumberValue(numbers ...Number) Value {
	return Value{kind: kindNumbers, numbers: numbers}
}

// IsText reports whether v holds a string.
func (v Value) IsText() bool { return v.kind == kindText }

// IsNumeric reports whether v holds numbers.
func (v Value) IsNumeric() bool { return v.kind == kindNumbers }

// Text returns the string content and whether v is text.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == kindText
}

// Numbers returns the numeric components and whether v is numeric.
func (v Value) Numbers() ([]Number, bool) {
	return v.numbers, v.kind == kindNumbers
}

func (v Value) String() string {
	switch v.kind {
	case kindText:
		return fmt.Sprintf("%q", v.text)
	case kindNumbers:
		parts := make([]string, len(v.numbers))
		for i, n := range v.numbers {
			parts[i] = fmt.Sprint(n)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return "<empty>"
}
