package ml

import (
	"strconv"
	"strings"
)

// Value is one cell of a single-row input. A cell is either text (categorical
// features) or a number.
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

func Text(s string) Value {
	return Value{Text: s}
}

func Number(f float64) Value {
	return Value{Number: f, Numeric: true}
}

func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// Row is an ordered single-row record. Column order is significant.
type Row struct {
	Columns []string
	Values  []Value
}

func (r *Row) Add(column string, v Value) {
	r.Columns = append(r.Columns, column)
	r.Values = append(r.Values, v)
}

func (r Row) Len() int {
	return len(r.Columns)
}

// Get returns the value of a column by name.
func (r Row) Get(column string) (Value, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return Value{}, false
}

func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteByte('=')
		if i < len(r.Values) {
			b.WriteString(r.Values[i].String())
		}
	}
	b.WriteByte('}')
	return b.String()
}
