package payment

import (
	"context"
	"math"
	"testing"

	"tourhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateIntentRejectsNonPositiveAmounts(t *testing.T) {
	g := NewStripeGateway("sk_test_unused", zap.NewNop())

	for _, amount := range []float64{0, -5, 0.001, 1e300, MaxIntentAmount + 1, math.NaN(), math.Inf(1)} {
		_, err := g.CreateIntent(context.Background(), amount)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "amount %v", amount)
	}
}

func TestToCents(t *testing.T) {
	cases := map[float64]int64{
		0.01:            1,
		19.99:           1999,
		120:             12000,
		MaxIntentAmount: 99999999,
	}
	for amount, want := range cases {
		got, err := toCents(amount)
		require.NoError(t, err, "amount %v", amount)
		assert.Equal(t, want, got, "amount %v", amount)
	}
}
