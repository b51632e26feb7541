package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{"00:00", 0, true},
		{"08:00", 480, true},
		{"12:30", 750, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"8:00", 0, false},
		{"08:5", 0, false},
		{"08:60", 0, false},
		{"0800", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0).String())
	assert.Equal(t, "08:30", Clock(510).String())
	assert.Equal(t, "24:00", Clock(MinutesPerDay).String())
}

func TestClockRoundTrip(t *testing.T) {
	for minutes := Clock(0); minutes < MinutesPerDay; minutes += 17 {
		parsed, err := ParseClock(minutes.String())
		require.NoError(t, err)
		assert.Equal(t, minutes, parsed)
	}
}

func TestSpanOverlaps(t *testing.T) {
	base := Span{Start: 480, End: 540} // 08:00-09:00

	assert.True(t, base.Overlaps(Span{Start: 510, End: 570}), "partial overlap")
	assert.True(t, base.Overlaps(Span{Start: 450, End: 600}), "containing span")
	assert.True(t, base.Overlaps(Span{Start: 500, End: 520}), "contained span")
	assert.True(t, base.Overlaps(base), "identical span")

	// Half-open intervals: touching endpoints do not overlap.
	assert.False(t, base.Overlaps(Span{Start: 540, End: 600}), "starts at end")
	assert.False(t, base.Overlaps(Span{Start: 420, End: 480}), "ends at start")
	assert.False(t, base.Overlaps(Span{Start: 600, End: 660}), "disjoint")
}

func TestSpanOverlapsIsSymmetric(t *testing.T) {
	a := Span{Start: 480, End: 540}
	b := Span{Start: 510, End: 570}
	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))

	c := Span{Start: 540, End: 600}
	assert.Equal(t, a.Overlaps(c), c.Overlaps(a))
}

func TestSplitWrap(t *testing.T) {
	t.Run("regular range stays whole", func(t *testing.T) {
		spans := SplitWrap(480, 720)
		require.Len(t, spans, 1)
		assert.Equal(t, Span{Start: 480, End: 720}, spans[0])
	})

	t.Run("wrap range splits at midnight", func(t *testing.T) {
		spans := SplitWrap(1320, 360) // 22:00-06:00
		require.Len(t, spans, 2)
		assert.Equal(t, Span{Start: 1320, End: MinutesPerDay}, spans[0])
		assert.Equal(t, Span{Start: 0, End: 360}, spans[1])
	})

	t.Run("wrap ending at midnight has no second half", func(t *testing.T) {
		spans := SplitWrap(1320, 0) // 22:00-00:00
		require.Len(t, spans, 1)
		assert.Equal(t, Span{Start: 1320, End: MinutesPerDay}, spans[0])
	})
}

func TestSpansOverlap(t *testing.T) {
	night := SplitWrap(1320, 360)   // 22:00-06:00
	morning := SplitWrap(480, 720)  // 08:00-12:00
	early := SplitWrap(300, 420)    // 05:00-07:00
	evening := SplitWrap(1380, 120) // 23:00-02:00

	assert.False(t, SpansOverlap(night, morning))
	assert.True(t, SpansOverlap(night, early), "early span collides with the post-midnight half")
	assert.True(t, SpansOverlap(night, evening))
}
