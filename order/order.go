package order

import "github.com/shopspring/decimal"

// IsBuySide returns whether crossing the direction consumes the ask side,
// meaning it increases net position
func (d Direction) IsBuySide() bool {
	return d == Buy || d == Cover
}

// IsOpen returns whether the direction opens new exposure rather than
// offsetting an existing position
func (d Direction) IsOpen() bool {
	return d == Buy || d == Short
}

// PositionSign returns the signed effect one unit of volume has on net
// position when a trade in this direction is applied
func (d Direction) PositionSign() decimal.Decimal {
	if d.IsBuySide() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// IsTerminal returns whether the status can no longer change
func (s Status) IsTerminal() bool {
	return s == Filled || s == Cancelled || s == Rejected
}

// Validate checks the order submission for synchronously rejectable faults
func (o *Order) Validate(symbol string) error {
	if o == nil {
		return ErrSubmissionIsNil
	}
	if o.Volume.LessThanOrEqual(decimal.Zero) {
		return ErrVolumeIsInvalid
	}
	if o.Symbol != symbol {
		return ErrSymbolIsUnknown
	}
	return nil
}
