package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr error
	}{
		{in: "customer", want: KindCustomer},
		{in: "waskat", want: KindWaskat},
		{in: "admin", wantErr: ErrInvalidKind},
		{in: "Customer", wantErr: ErrInvalidKind},
		{in: "", wantErr: ErrInvalidKind},
		{in: "customer; DROP TABLE customer", wantErr: ErrInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindNew(t *testing.T) {
	assert.IsType(t, &Customer{}, KindCustomer.New())
	assert.IsType(t, &Waskat{}, KindWaskat.New())
	assert.Nil(t, Kind("admin").New())

	for _, k := range Kinds {
		assert.Equal(t, k, k.New().Kind())
	}
}

func TestNormalize(t *testing.T) {
	now := time.Date(2026, 3, 9, 22, 15, 0, 0, time.UTC)

	c := &Customer{Name: "Ali"}
	c.Normalize(now)
	assert.Equal(t, "2026-03-09", c.RegistrationDate)

	w := &Waskat{RegistrationDate: "2024-01-02"}
	w.Normalize(now)
	assert.Equal(t, "2024-01-02", w.RegistrationDate, "existing date is kept")
}

func TestIsTransient(t *testing.T) {
	base := errors.New("SQLITE_BUSY")
	te := &TransientError{Op: "insert customer", Err: base}

	assert.True(t, IsTransient(te))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", te)))
	assert.False(t, IsTransient(base))
	assert.False(t, IsTransient(nil))
	assert.ErrorIs(t, te, base)
	assert.Contains(t, te.Error(), "insert customer")
}

func TestRestoreReportTotal(t *testing.T) {
	r := RestoreReport{
		Customers: Tally{Inserted: 2, Errors: 1},
		Waskat:    Tally{Inserted: 3},
	}
	assert.Equal(t, Tally{Inserted: 5, Errors: 1}, r.Total())
}

func TestCustomerJSONFlags(t *testing.T) {
	data, err := json.Marshal(&Customer{ID: 1, Name: "Ali", YakhanBin: true})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1), raw["yakhanBin"])
	assert.Equal(t, float64(0), raw["jeebTunban"])
	assert.Equal(t, "Ali", raw["name"])

	var back Customer
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Customer{ID: 1, Name: "Ali", YakhanBin: true}, back)

	tests := []struct {
		in   string
		want bool
	}{
		{`1`, true},
		{`0`, false},
		{`true`, true},
		{`false`, false},
		{`"1"`, true},
		{`"true"`, true},
		{`""`, false},
		{`null`, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Customer
			require.NoError(t, json.Unmarshal([]byte(`{"jeebTunban": `+tt.in+`}`), &c))
			assert.Equal(t, tt.want, c.JeebTunban)
		})
	}

	var c Customer
	assert.Error(t, json.Unmarshal([]byte(`{"yakhanBin": {}}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"nmae": "typo"}`), &c), "unknown fields are rejected")
}
