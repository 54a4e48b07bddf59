package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-05", d.String())

	for _, bad := range []string{"", "2026-13-01", "05/10/2026", "2026-10-05T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "%q must not parse", bad)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.October, 10)
	b := NewDate(2026, time.October, 12)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2026, time.October, 10)))
	assert.Equal(t, 2, a.DaysUntil(b))
	assert.Equal(t, -2, b.DaysUntil(a))
	assert.True(t, a.AddDays(2).Equal(b))
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		CheckIn Date `json:"check_in"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"check_in":"2026-10-10"}`), &p))
	assert.Equal(t, NewDate(2026, time.October, 10), p.CheckIn)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"check_in":"2026-10-10"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"check_in":20261010}`), &p))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.October, 10, 23, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2026-10-10", d.String())

	require.NoError(t, d.Scan([]byte("2026-03-01")))
	assert.Equal(t, "2026-03-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2026, time.October, 10).Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-10", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
