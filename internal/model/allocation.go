package model

// Source is an income stream allocations can draw from. The set is closed:
// regular paycheck take-home, or the irregular bucket (ESPP, vested stock,
// bonus).
type Source string

const (
	SourceSalaryTakeHome Source = "Salary Take-Home"
	SourceIrregular      Source = "Irregular Income"
)

// UnallocatedSpending is the sink label for income not assigned to any
// expense.
const UnallocatedSpending = "Unallocated Spending"

// Allocation plans a portion of an income stream against an expense name
// (or the unallocated sink). Identity is the (From, To) pair: upserting the
// same pair replaces the value instead of adding a parallel edge.
type Allocation struct {
	From  Source  `json:"from"`
	To    string  `json:"to"`
	Value float64 `json:"value"`
}
