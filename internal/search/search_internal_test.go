package search

// White-box testing required: tier and normalizeScores drive the ranking
// but only the final order is visible through Rank.

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestTier(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		text, q string
		want    float64
	}{
		{"milk", "milk", scoreExact},
		{"milk chocolate", "milk", scorePrefix},
		{"oat milk", "milk", scoreSubstring},
		{"bread", "milk", 0},
		{"", "milk", 0},
	}
	for _, tc := range cases {
		c.Run(tc.text, func(c *qt.C) {
			c.Assert(tier(tc.text, tc.q), qt.Equals, tc.want)
		})
	}
}

func TestNormalizeScores(t *testing.T) {
	c := qt.New(t)

	c.Run("empty slice is a no-op", func(c *qt.C) {
		var rs []Result[string]
		normalizeScores(rs)
		c.Assert(rs, qt.HasLen, 0)
	})

	c.Run("divided by max", func(c *qt.C) {
		rs := []Result[string]{{Score: 4}, {Score: 2}}
		normalizeScores(rs)
		c.Assert(rs[0].Score, qt.Equals, 1.0)
		c.Assert(rs[1].Score, qt.Equals, 0.5)
	})
}

func TestClamp(t *testing.T) {
	c := qt.New(t)
	c.Assert(clamp(0, 5), qt.Equals, 5)
	c.Assert(clamp(3, 5), qt.Equals, 3)
	c.Assert(clamp(9, 5), qt.Equals, 5)
}
