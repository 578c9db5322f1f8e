package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Baseline is the free-form starting value of an indicator. Raw keeps the
// author's text for display and Value holds its best-effort numeric parse,
// which is what aggregation uses.
type Baseline struct {
	Raw   string
	Value float64

	// numeric records that the value arrived as a JSON number so it can be
	// written back the same way.
	numeric bool
}

// ParseBaseline builds a Baseline from author-entered text. Text without a
// numeric prefix keeps Value at 0.
func ParseBaseline(raw string) Baseline {
	return Baseline{Raw: raw, Value: ParseFigure(raw)}
}

// NumericBaseline builds a Baseline from a number.
func NumericBaseline(v float64) Baseline {
	return Baseline{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, numeric: true}
}

func (b Baseline) String() string {
	return b.Raw
}

func (b Baseline) MarshalJSON() ([]byte, error) {
	if b.numeric {
		return json.Marshal(b.Value)
	}
	return json.Marshal(b.Raw)
}

func (b *Baseline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = Baseline{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = ParseBaseline(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = NumericBaseline(v)
	return nil
}
