package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRelativeAge(t *testing.T) {
	cases := []struct {
		now    string
		then   string
		expect string
	}{
		{
			now:    "2024-01-10T12:00:00+08:00",
			then:   "2024-01-08T09:30:00+08:00",
			expect: "2 day(s) 2 hour(s) and 30 minute(s) ago",
		},
		{
			now:    "2024-01-10T12:00:00+08:00",
			then:   "2024-01-10T12:00:00+08:00",
			expect: "0 day(s) 0 hour(s) and 0 minute(s) ago",
		},
		{
			// seconds are discarded, not rounded
			now:    "2024-01-10T12:00:59+08:00",
			then:   "2024-01-10T11:59:00+08:00",
			expect: "0 day(s) 0 hour(s) and 1 minute(s) ago",
		},
		{
			// mixed offsets compare by instant
			now:    "2024-03-01T08:00:00+08:00",
			then:   "2024-03-01T00:00:00+00:00",
			expect: "0 day(s) 0 hour(s) and 0 minute(s) ago",
		},
		{
			// future timestamps clamp to zero
			now:    "2024-01-10T12:00:00+08:00",
			then:   "2024-01-11T12:00:00+08:00",
			expect: "0 day(s) 0 hour(s) and 0 minute(s) ago",
		},
	}

	for _, test := range cases {
		now, err := time.Parse(time.RFC3339, test.now)
		require.NoError(t, err)
		then, err := time.Parse(time.RFC3339, test.then)
		require.NoError(t, err)
		require.Equal(t, test.expect, RelativeAge(now, then))
	}
}

func TestNowIsInReferenceZone(t *testing.T) {
	_, offset := Now().Zone()
	require.Equal(t, 8*60*60, offset)
}
