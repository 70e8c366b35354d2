package payment

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	"merobooking/shared/constant"
	"merobooking/shared/failure"
)

// ChargeResult is the outcome of a wallet charge attempt.
type ChargeResult struct {
	Reference string
	Status    string
}

// Gateway charges digital wallets. CASH is pay-on-arrival and never reaches
// the gateway.
type Gateway interface {
	Charge(ctx context.Context, method string, amount int64, userID, bookingID string) (ChargeResult, error)
}

type walletGateway struct {
	otel otel.Otel
}

// NewWalletGateway returns the simulated eSewa/Khalti gateway. Charges always
// settle; the real integrations slot in behind the same interface.
func NewWalletGateway(otel otel.Otel) Gateway {
	return &walletGateway{otel: otel}
}

func (g *walletGateway) Charge(ctx context.Context, method string, amount int64, userID, bookingID string) (res ChargeResult, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Charge")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch method {
	case constant.PaymentMethodEsewa, constant.PaymentMethodKhalti:
	default:
		return res, failure.BadRequestFromString("payment method not supported by wallet gateway") // nolint:wrapcheck
	}

	res = ChargeResult{
		Reference: uuid.NewString(),
		Status:    constant.PaymentStatusPaid,
	}

	log.Info().
		Str("method", method).
		Str("bookingID", bookingID).
		Int64("amount", amount).
		Str("reference", res.Reference).
		Msg("wallet charge settled")

	return res, nil
}
