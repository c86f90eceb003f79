package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressCalendarUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    ProgressCalendar
		wantErr bool
	}{
		{
			name:  "map form",
			input: `{"2026-08-28": 4, "2026-08-29": 2.5}`,
			want:  ProgressCalendar{"2026-08-28": 4, "2026-08-29": 2.5},
		},
		{
			name:  "record list form",
			input: `[{"date": "2026-08-28", "effort": 4}, {"date": "2026-08-29", "effort": 2.5}]`,
			want:  ProgressCalendar{"2026-08-28": 4, "2026-08-29": 2.5},
		},
		{
			name:  "record list skips entries without a date",
			input: `[{"effort": 4}, {"date": "2026-08-29", "effort": 1}]`,
			want:  ProgressCalendar{"2026-08-29": 1},
		},
		{
			name:  "later record wins for a duplicated date",
			input: `[{"date": "2026-08-28", "effort": 4}, {"date": "2026-08-28", "effort": 7}]`,
			want:  ProgressCalendar{"2026-08-28": 7},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  ProgressCalendar{},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
		{
			name:    "scalar rejected",
			input:   `42`,
			wantErr: true,
		},
		{
			name:    "string rejected",
			input:   `"2026-08-28"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got ProgressCalendar
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgressCalendarTotals(t *testing.T) {
	t.Parallel()

	cal := ProgressCalendar{
		"2026-08-26": 2,
		"2026-08-27": 3,
		"2026-08-28": 4,
	}

	assert.Equal(t, 9.0, cal.Total())
	assert.Equal(t, 5.0, cal.TotalExcluding("2026-08-28"))
	assert.Equal(t, 9.0, cal.TotalExcluding("2026-09-01"), "absent date excludes nothing")
	assert.Zero(t, ProgressCalendar(nil).Total())
	assert.Zero(t, ProgressCalendar{}.TotalExcluding("2026-08-28"))
}

func TestProgressCalendarScanValue(t *testing.T) {
	t.Parallel()

	cal := ProgressCalendar{"2026-08-28": 4}
	value, err := cal.Value()
	require.NoError(t, err)

	var loaded ProgressCalendar
	require.NoError(t, loaded.Scan(value))
	assert.Equal(t, cal, loaded)

	var fromString ProgressCalendar
	require.NoError(t, fromString.Scan(`{"2026-08-28": 4}`))
	assert.Equal(t, cal, fromString)

	var fromNil ProgressCalendar
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)

	var bad ProgressCalendar
	require.Error(t, bad.Scan(42))
}
