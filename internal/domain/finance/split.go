package finance

import (
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Receipts are VAT-inclusive at the standard 22% rate; the net is always
// recovered as round(gross / 1.22) before any share is computed. Every
// percentage share is taken from the net and rounded independently, so the
// recomposed total can drift from the gross by at most one cent. Callers
// tolerate that cent; nothing redistributes it.

var vatDivisor = decimal.NewFromFloat(1.22)

// Fixed share percentages of the income split policy.
var (
	ownerSharePct      = decimal.NewFromInt(10)
	reserveSharePct    = decimal.NewFromInt(20)
	operationsSharePct = decimal.NewFromInt(70)
	taxSharePct        = decimal.NewFromInt(22)
	partnersSharePct   = decimal.NewFromInt(30)
)

// IncomeBreakdown is the fixed-ratio decomposition of a gross receipt
type IncomeBreakdown struct {
	Gross           valueobject.Money
	Net             valueobject.Money
	OwnerShare      valueobject.Money // 10% of net
	ReserveShare    valueobject.Money // 20% of net
	OperationsShare valueobject.Money // 70% of net
	TaxShare        valueobject.Money // 22% of net, the VAT reserve
}

// Shares returns the four beneficiary shares in order
func (b IncomeBreakdown) Shares() []valueobject.Money {
	return []valueobject.Money{b.OwnerShare, b.ReserveShare, b.OperationsShare, b.TaxShare}
}

// SplitIncome decomposes a gross, VAT-inclusive receipt into the fixed
// 10/20/70 beneficiary shares plus the 22% tax reserve.
func SplitIncome(gross valueobject.Money) (IncomeBreakdown, error) {
	if !gross.IsPositive() {
		return IncomeBreakdown{}, shared.NewDomainError("INVALID_AMOUNT", "Gross amount must be positive")
	}

	net, err := gross.DivideByDecimal(vatDivisor)
	if err != nil {
		return IncomeBreakdown{}, err
	}

	return IncomeBreakdown{
		Gross:           gross,
		Net:             net,
		OwnerShare:      net.Percentage(ownerSharePct),
		ReserveShare:    net.Percentage(reserveSharePct),
		OperationsShare: net.Percentage(operationsSharePct),
		TaxShare:        net.Percentage(taxSharePct),
	}, nil
}

// SaleBreakdown decomposes a gross sale receipt after an agent commission
type SaleBreakdown struct {
	Gross          valueobject.Money
	Net            valueobject.Money
	Commission     valueobject.Money // commissionRate% of net
	PostCommission valueobject.Money // net minus commission
	TaxShare       valueobject.Money // 22% of net
	PartnersShare  valueobject.Money // 30% of net
	Available      valueobject.Money // what remains after commission, tax and partners
}

// SplitSale decomposes a gross, VAT-inclusive sale receipt, deducting an
// agent commission at the given percentage rate before computing what is
// left available. A zero rate means no agent was involved.
func SplitSale(gross valueobject.Money, commissionRate decimal.Decimal) (SaleBreakdown, error) {
	if !gross.IsPositive() {
		return SaleBreakdown{}, shared.NewDomainError("INVALID_AMOUNT", "Gross amount must be positive")
	}
	if commissionRate.IsNegative() {
		return SaleBreakdown{}, shared.NewDomainError("INVALID_RATE", "Commission rate cannot be negative")
	}

	net, err := gross.DivideByDecimal(vatDivisor)
	if err != nil {
		return SaleBreakdown{}, err
	}

	commission := net.Percentage(commissionRate)
	postCommission := net.Subtract(commission)
	tax := net.Percentage(taxSharePct)
	partners := net.Percentage(partnersSharePct)

	return SaleBreakdown{
		Gross:          gross,
		Net:            net,
		Commission:     commission,
		PostCommission: postCommission,
		TaxShare:       tax,
		PartnersShare:  partners,
		Available:      postCommission.Subtract(tax).Subtract(partners),
	}, nil
}
