package payments

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// IntentCreator abstracts the payment processor's intent API.
type IntentCreator interface {
	// CreateIntent opens a payment intent for the given amount in minor
	// currency units and returns its client secret.
	CreateIntent(ctx context.Context, amountInCents int64) (string, error)
}

// StripeClient creates payment intents through the Stripe API.
type StripeClient struct{}

// NewStripeClient configures the global Stripe key and returns a client.
func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{}
}

// CreateIntent opens a card payment intent in USD.
func (c *StripeClient) CreateIntent(ctx context.Context, amountInCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountInCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
