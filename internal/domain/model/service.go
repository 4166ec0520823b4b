package model

import "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"

// Service is a billable service offered by the company.
type Service struct {
	ID          ID           `json:"id"                    form:"-"`
	Name        string       `json:"service_name"          form:"service_name" validate:"required,max=255"`
	SKU         string       `json:"sku,omitempty"         form:"sku"          validate:"omitempty,max=64"`
	Unit        string       `json:"unit,omitempty"        form:"unit"`
	Price       money.Amount `json:"price"                 form:"price"        validate:"required"`
	TaxPercent  money.Amount `json:"tax_percent"           form:"tax_percent"`
	Description string       `json:"description,omitempty" form:"description"  validate:"omitempty,max=1000"`
}

// EntityID implements Entity.
func (s Service) EntityID() ID { return s.ID }
