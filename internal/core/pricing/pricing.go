// Package pricing derives the amount a buyer owes for a checkout.
//
// Compute is pure: it performs no I/O and the same input always yields the
// same Breakdown. Amounts are rounded half-to-even to minor units once, on the
// tax and total, and never on the intermediate subtractions.
package pricing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/govalues/decimal"
)

// MinorUnitScale is the number of digits after the decimal point of the currency.
const MinorUnitScale = 2

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrTaxRate        = errors.New("tax rate must be in [0, 1)")
)

type Input struct {
	BaseAmount     decimal.Decimal
	Discount       *domain.Discount
	WalletSnapshot decimal.Decimal
	UseWallet      bool
	TaxRate        decimal.Decimal
}

func Compute(in Input) (domain.Breakdown, error) {
	if in.BaseAmount.IsNeg() || in.WalletSnapshot.IsNeg() {
		return domain.Breakdown{}, ErrNegativeAmount
	}
	if in.TaxRate.IsNeg() || in.TaxRate.Cmp(decimal.One) >= 0 {
		return domain.Breakdown{}, ErrTaxRate
	}

	discount := decimal.Zero
	if in.Discount != nil {
		discount = clamp(in.Discount.Amount, in.BaseAmount)
	}

	payable, err := in.BaseAmount.Sub(discount)
	if err != nil {
		return domain.Breakdown{}, fmt.Errorf("math error:%w", err)
	}

	wallet := decimal.Zero
	if in.UseWallet {
		wallet = clamp(in.WalletSnapshot, payable)
	}

	subtotal, err := payable.Sub(wallet)
	if err != nil {
		return domain.Breakdown{}, fmt.Errorf("math error:%w", err)
	}
	if subtotal.IsNeg() {
		subtotal = decimal.Zero
	}

	tax, err := in.TaxRate.Mul(subtotal)
	if err != nil {
		return domain.Breakdown{}, fmt.Errorf("math error:%w", err)
	}
	tax = tax.Round(MinorUnitScale)

	total, err := subtotal.Add(tax)
	if err != nil {
		return domain.Breakdown{}, fmt.Errorf("math error:%w", err)
	}
	total = total.Round(MinorUnitScale)

	return domain.Breakdown{
		BaseAmount:     in.BaseAmount,
		DiscountAmount: discount,
		WalletAmount:   wallet,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		TotalAmount:    total,
	}, nil
}

// clamp bounds d to [0, upper].
func clamp(d, upper decimal.Decimal) decimal.Decimal {
	if d.IsNeg() {
		return decimal.Zero
	}
	if d.Cmp(upper) > 0 {
		return upper
	}
	return d
}

// MinorUnits converts an amount to the integer the gateway widget expects (826.5 -> 82650).
func MinorUnits(d decimal.Decimal) (int64, error) {
	scaled, err := d.Mul(decimal.Hundred)
	if err != nil {
		return 0, fmt.Errorf("math error:%w", err)
	}
	return strconv.ParseInt(scaled.Round(0).String(), 10, 64)
}
