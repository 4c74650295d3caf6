package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ameyarj/chima-ads/models"
)

func TestBuildNarration(t *testing.T) {
	t.Run("uses at most two benefits with sentence joins", func(t *testing.T) {
		script := &models.AdScript{
			Hook:         "H",
			Problem:      "P.",
			Solution:     "S.",
			Benefits:     []string{"B1", "B2", "B3"},
			CallToAction: "C",
		}

		assert.Equal(t, "H. P. S. B1 and B2. C", BuildNarration(script))
	})

	t.Run("single benefit has no join word", func(t *testing.T) {
		script := &models.AdScript{
			Hook:         "Look at this",
			Problem:      "Mornings are slow",
			Solution:     "Brew in seconds",
			Benefits:     []string{"Saves time"},
			CallToAction: "Order now",
		}

		assert.Equal(t, "Look at this. Mornings are slow. Brew in seconds. Saves time. Order now", BuildNarration(script))
	})

	t.Run("skips empty parts", func(t *testing.T) {
		script := &models.AdScript{
			Hook:         "Hook",
			Problem:      "",
			Solution:     "Solution",
			Benefits:     []string{"", "B2", "B3"},
			CallToAction: "CTA",
		}

		assert.Equal(t, "Hook. Solution. B2 and B3. CTA", BuildNarration(script))
	})

	t.Run("empty script yields empty narration", func(t *testing.T) {
		assert.Equal(t, "", BuildNarration(&models.AdScript{}))
	})
}
