package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// QuarterCount is the number of reporting quarters in a fiscal year.
const QuarterCount = 4

type QuarterlyData struct {
	Target      float64 `json:"target"`
	Achievement float64 `json:"achievement"`
}

func (q *QuarterlyData) UnmarshalJSON(data []byte) error {
	var aux struct {
		Target      flexFloat `json:"target"`
		Achievement flexFloat `json:"achievement"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q.Target = float64(aux.Target)
	q.Achievement = float64(aux.Achievement)
	return nil
}

// Quarters holds the four quarterly records of an indicator. Index 0 is
// quarter 1; use Quarter for 1-based access.
type Quarters [QuarterCount]QuarterlyData

// ValidQuarter reports whether q names one of the four quarters.
func ValidQuarter(q int) bool {
	return q >= 1 && q <= QuarterCount
}

// CheckQuarter returns ErrInvalidQuarter for anything outside 1..4.
func CheckQuarter(q int) error {
	if !ValidQuarter(q) {
		return fmt.Errorf("quarter %d: %w", q, ErrInvalidQuarter)
	}
	return nil
}

// Quarter returns the record for the 1-based quarter q.
func (qs Quarters) Quarter(q int) (QuarterlyData, error) {
	if err := CheckQuarter(q); err != nil {
		return QuarterlyData{}, err
	}
	return qs[q-1], nil
}

func (qs Quarters) TargetSum() float64 {
	var sum float64
	for _, q := range qs {
		sum += q.Target
	}
	return sum
}

func (qs Quarters) AchievementSum() float64 {
	var sum float64
	for _, q := range qs {
		sum += q.Achievement
	}
	return sum
}

// MarshalJSON writes the quarters as an object keyed "1".."4".
func (qs Quarters) MarshalJSON() ([]byte, error) {
	m := make(map[string]QuarterlyData, QuarterCount)
	for i, q := range qs {
		m[strconv.Itoa(i+1)] = q
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads an object keyed "1".."4". Partial sets are rejected.
func (qs *Quarters) UnmarshalJSON(data []byte) error {
	var m map[string]QuarterlyData
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Quarters
	for i := range out {
		q, ok := m[strconv.Itoa(i+1)]
		if !ok {
			return fmt.Errorf("missing quarter %d: %w", i+1, ErrIncompleteQuarters)
		}
		out[i] = q
	}
	*qs = out
	return nil
}

// CurrentQuarter maps a calendar date to its quarter: January through March
// is quarter 1, and so on.
func CurrentQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
