package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		spent string
		want  Tier
		label string
	}{
		{"0", TierRegular, "Regular Member!"},
		{"149", TierRegular, "Regular Member!"},
		{"149.99", TierRegular, "Regular Member!"},
		{"150", TierBronze, "Bronze Member!"},
		{"199.99", TierBronze, "Bronze Member!"},
		{"200", TierSilver, "Silver Member!"},
		{"499.99", TierSilver, "Silver Member!"},
		{"500", TierGold, "Gold Member!"},
		{"10000", TierGold, "Gold Member!"},
	}

	for _, tc := range cases {
		t.Run(tc.spent, func(t *testing.T) {
			got := TierFor(dec(tc.spent))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.label, got.String())
		})
	}
}
