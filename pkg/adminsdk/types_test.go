package adminsdk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
	}{
		{"rfc3339", `"2026-05-04T10:00:00Z"`},
		{"rfc3339 with offset", `"2026-05-04T20:00:00+10:00"`},
		{"unix number", `1777888800`},
		{"unix string", `"1777888800"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			require.True(t, ts.Equal(want), "got %s", ts.Time)
		})
	}

	t.Run("null is zero", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
		require.True(t, ts.IsZero())
	})

	t.Run("garbage", func(t *testing.T) {
		var ts Timestamp
		require.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
		require.Error(t, json.Unmarshal([]byte(`true`), &ts))
	})
}

func TestTimestampMarshal(t *testing.T) {
	t.Parallel()

	ts := Timestamp{time.Date(2026, 5, 4, 20, 0, 0, 0, time.FixedZone("AEST", 10*3600))}
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	require.JSONEq(t, `"2026-05-04T10:00:00Z"`, string(b))
}
