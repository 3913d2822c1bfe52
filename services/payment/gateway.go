package payment

import (
	"context"
	"math"

	"tourhub/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// MaxIntentAmount is the largest charge Stripe accepts in USD.
const MaxIntentAmount = 999999.99

// Gateway creates payment intents with the card processor.
type Gateway interface {
	// CreateIntent takes an amount in major currency units and returns the client secret.
	CreateIntent(ctx context.Context, amount float64) (string, error)
}

// StripeGateway talks to Stripe with its own client so tests and other
// packages never share the global API key.
type StripeGateway struct {
	client   *paymentintent.Client
	currency stripe.Currency
	logger   *zap.Logger
}

func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		client:   &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		currency: stripe.CurrencyUSD,
		logger:   logger,
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64) (string, error) {
	cents, err := toCents(amount)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(cents),
		Currency:           stripe.String(string(g.currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.client.New(params)
	if err != nil {
		return "", utils.Internal("failed to create payment intent", err)
	}
	g.logger.Debug("Payment intent created", zap.String("intentId", intent.ID), zap.Int64("amount", cents))
	return intent.ClientSecret, nil
}

// toCents converts a major-unit amount to whole cents, rejecting amounts that
// round to zero or exceed MaxIntentAmount.
func toCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, utils.Validation("amount must be greater than zero")
	}
	if amount > MaxIntentAmount {
		return 0, utils.Validation("amount exceeds the maximum allowed charge")
	}
	cents := int64(math.Round(amount * 100))
	if cents < 1 {
		return 0, utils.Validation("amount must be at least one cent")
	}
	return cents, nil
}
