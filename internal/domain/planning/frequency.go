package planning

// Frequency represents how often a recurring contract produces a cash event
type Frequency string

const (
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyQuarterly  Frequency = "QUARTERLY"
	FrequencySemiannual Frequency = "SEMIANNUAL"
	FrequencyAnnual     Frequency = "ANNUAL"
	FrequencyOneTime    Frequency = "ONE_TIME"
)

// IsValid checks if the frequency is a valid Frequency
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiannual,
		FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

// String returns the string representation of Frequency
func (f Frequency) String() string {
	return string(f)
}

// PeriodMonths returns the recurrence period in months, or 0 when the
// frequency does not repeat at a sub-year cadence (annual, one-time).
func (f Frequency) PeriodMonths() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	default:
		return 0
	}
}

// FlowType distinguishes expected incomes from expected expenses
type FlowType string

const (
	FlowTypeIncome  FlowType = "INCOME"
	FlowTypeExpense FlowType = "EXPENSE"
)

// IsValid checks if the flow type is a valid FlowType
func (t FlowType) IsValid() bool {
	return t == FlowTypeIncome || t == FlowTypeExpense
}

// String returns the string representation of FlowType
func (t FlowType) String() string {
	return string(t)
}
