package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeProposalPattern(t *testing.T) {
	t.Run("raw recipient id", func(t *testing.T) {
		matches := tradeProposalPattern.FindStringSubmatch("inv#42 123456789")
		require.NotNil(t, matches)
		assert.Equal(t, "42", matches[1])
		assert.Equal(t, "123456789", matches[2])
	})

	t.Run("mentioned recipient", func(t *testing.T) {
		matches := tradeProposalPattern.FindStringSubmatch("inv#42 <@123456789>")
		require.NotNil(t, matches)
		assert.Equal(t, "123456789", matches[2])

		matches = tradeProposalPattern.FindStringSubmatch("inv#42 <@!123456789>")
		require.NotNil(t, matches)
		assert.Equal(t, "123456789", matches[2])
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		for _, input := range []string{
			"inv#42",
			"inv# 42 123",
			"inv#abc 123",
			"inv#42 someone",
			"inv#42 123 extra",
		} {
			assert.Nil(t, tradeProposalPattern.FindStringSubmatch(input), "expected %q to be rejected", input)
		}
	})
}
