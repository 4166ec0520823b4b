package model

import "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"

// Account is a chart-of-accounts entry.
type Account struct {
	ID          ID           `json:"id"                    form:"-"`
	Name        string       `json:"account_name"          form:"account_name"   validate:"required,max=255"`
	Code        string       `json:"account_code"          form:"account_code"   validate:"omitempty,max=32"`
	Type        string       `json:"account_type"          form:"account_type"   validate:"required,oneof=asset liability equity income expense"`
	ParentID    string       `json:"parent_id,omitempty"   form:"parent_id"`
	Balance     money.Amount `json:"balance"               form:"balance"`
	Description string       `json:"description,omitempty" form:"description"    validate:"omitempty,max=1000"`
}

// EntityID implements Entity.
func (a Account) EntityID() ID { return a.ID }
