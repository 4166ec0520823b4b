package model

import "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"

// PayrollStatus is the approval state of a payroll request.
type PayrollStatus string

const (
	PayrollPending  PayrollStatus = "pending"
	PayrollApproved PayrollStatus = "approved"
	PayrollRejected PayrollStatus = "rejected"
)

// PayrollRequest asks for a month's salary disbursement for one employee.
type PayrollRequest struct {
	ID           ID            `json:"id"              form:"-"`
	EmployeeName string        `json:"employee_name"   form:"employee_name" validate:"required,max=255"`
	Month        string        `json:"month"           form:"month"         validate:"required,datetime=2006-01"`
	Amount       money.Amount  `json:"amount"          form:"amount"        validate:"required"`
	Status       PayrollStatus `json:"status"          form:"status"        validate:"omitempty,oneof=pending approved rejected"`
	Notes        string        `json:"notes,omitempty" form:"notes"         validate:"omitempty,max=1000"`
}

// EntityID implements Entity.
func (p PayrollRequest) EntityID() ID { return p.ID }

// Payslip is the issued salary statement for a pay period.
type Payslip struct {
	ID           ID           `json:"id"            form:"-"`
	EmployeeName string       `json:"employee_name" form:"employee_name" validate:"required,max=255"`
	Period       string       `json:"pay_period"    form:"pay_period"    validate:"required,datetime=2006-01"`
	GrossPay     money.Amount `json:"gross_pay"     form:"gross_pay"     validate:"required"`
	Deductions   money.Amount `json:"deductions"    form:"deductions"`
	NetPay       money.Amount `json:"net_pay"       form:"net_pay"`
}

// EntityID implements Entity.
func (p Payslip) EntityID() ID { return p.ID }

// Settlement is a final or partial settlement paid to an employee.
type Settlement struct {
	ID           ID           `json:"id"               form:"-"`
	EmployeeName string       `json:"employee_name"    form:"employee_name"   validate:"required,max=255"`
	Date         string       `json:"settlement_date"  form:"settlement_date" validate:"required,datetime=2006-01-02"`
	Amount       money.Amount `json:"amount"           form:"amount"          validate:"required"`
	Reason       string       `json:"reason,omitempty" form:"reason"          validate:"omitempty,max=1000"`
}

// EntityID implements Entity.
func (s Settlement) EntityID() ID { return s.ID }
