package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarters_Quarter(t *testing.T) {
	qs := Quarters{{Target: 1}, {Target: 2}, {Target: 3}, {Target: 4}}

	q, err := qs.Quarter(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, q.Target)

	_, err = qs.Quarter(0)
	assert.ErrorIs(t, err, ErrInvalidQuarter)
	_, err = qs.Quarter(5)
	assert.ErrorIs(t, err, ErrInvalidQuarter)
}

func TestQuarters_Sums(t *testing.T) {
	qs := Quarters{
		{Target: 250, Achievement: 240},
		{Target: 250, Achievement: 260},
		{Target: 250, Achievement: 100},
		{Target: 250, Achievement: 0},
	}
	assert.Equal(t, 1000.0, qs.TargetSum())
	assert.Equal(t, 600.0, qs.AchievementSum())
}

func TestQuarters_MarshalKeyedObject(t *testing.T) {
	qs := Quarters{{Target: 1, Achievement: 2}}
	out, err := json.Marshal(qs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"target":1,"achievement":2},"2":{"target":0,"achievement":0},"3":{"target":0,"achievement":0},"4":{"target":0,"achievement":0}}`, string(out))
}

func TestCurrentQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1}, {time.March, 1},
		{time.April, 2}, {time.June, 2},
		{time.July, 3}, {time.September, 3},
		{time.October, 4}, {time.December, 4},
	}
	for _, tt := range tests {
		got := CurrentQuarter(time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got, tt.month.String())
	}
}

func TestIndicator_SetQuarterTarget(t *testing.T) {
	ind := NewIndicator("i")
	require.NoError(t, ind.SetQuarterTarget(1, 10))
	require.NoError(t, ind.SetQuarterTarget(4, 5))
	assert.Equal(t, 15.0, ind.AnnualTarget)

	assert.ErrorIs(t, ind.SetQuarterTarget(7, 1), ErrInvalidQuarter)
	assert.Equal(t, 15.0, ind.AnnualTarget)
}
