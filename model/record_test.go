package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"iusearch/model"
)

func TestRecord_UnmarshalPreservesWireOrder(t *testing.T) {
	payload := `{"zeta":"z","alpha":1,"mid":null,"beta":true}`

	var rec model.Record
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	require.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, rec.Keys())

	v, ok := rec.Get("alpha")
	require.True(t, ok)
	require.Equal(t, float64(1), v)

	v, ok = rec.Get("mid")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestRecord_MarshalRoundTripsOrder(t *testing.T) {
	payload := `{"name":"John","phone":null,"age":41}`

	var rec model.Record
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	out, err := json.Marshal(&rec)
	require.NoError(t, err)
	require.JSONEq(t, payload, string(out))

	// Wire order, not lexical order.
	require.Equal(t, `{"name":"John","phone":null,"age":41}`, string(out))
}

func TestRecord_Identifier(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		order  []string
		want   string
		wantOK bool
	}{
		{
			name:   "numeric id",
			fields: map[string]any{"id": float64(3)},
			order:  []string{"id"},
			want:   "3",
			wantOK: true,
		},
		{
			name:   "fallback to _id",
			fields: map[string]any{"_id": "p-88"},
			order:  []string{"_id"},
			want:   "p-88",
			wantOK: true,
		},
		{
			name:   "id preferred over _id",
			fields: map[string]any{"id": float64(1), "_id": "x"},
			order:  []string{"_id", "id"},
			want:   "1",
			wantOK: true,
		},
		{
			name:   "no identifier",
			fields: map[string]any{"name": "John"},
			order:  []string{"name"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.NewRecord()
			for _, key := range tt.order {
				rec.Set(key, tt.fields[key])
			}
			got, ok := rec.Identifier()
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "John", want: "John"},
		{name: "integral number has no decimal point", value: float64(42), want: "42"},
		{name: "fractional number", value: 3.5, want: "3.5"},
		{name: "bool", value: true, want: "true"},
		{name: "nil", value: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, model.ScalarString(tt.value))
		})
	}
}
