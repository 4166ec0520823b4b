// Package screens registers the console's CRUD screens and keeps one set of
// live screens per browser session.
package screens

import (
	"fmt"
	"log/slog"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/money"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/resource"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/validation"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

// Permission module keys, as stored in userPermissions.
const (
	ModuleAccounts    = "Charts_of_Accounts"
	ModuleServices    = "Services"
	ModulePayslips    = "Payslips"
	ModulePayroll     = "Payroll"
	ModuleSettlements = "Settlements"
	ModuleVouchers    = "Vouchers"
	ModuleUserRoles   = "User_Roles"
)

// Deps are the shared collaborators every screen is built from.
type Deps struct {
	Backend  ports.Backend               // Required
	Resolver *service.PermissionResolver // Required
	Binder   *validation.Binder
	Timing   viewmodel.ScreenTiming
	Clock    viewmodel.Clock
	Logger   *slog.Logger
	Recorder viewmodel.Recorder
}

// Definition describes one screen.
type Definition struct {
	// Slug is the URL segment, e.g. "accounts".
	Slug string
	// Module is the permission key.
	Module   string
	Title    string
	Endpoint resource.Endpoint
	build    func(deps Deps, sess domainauth.Session) (Handle, error)
}

// Build creates a screen for sess with capabilities resolved from its permissions.
func (d Definition) Build(deps Deps, sess domainauth.Session) (Handle, error) {
	return d.build(deps, sess)
}

// blueprint is the typed description of a screen.
type blueprint[T model.Entity] struct {
	slug     string
	module   string
	title    string
	endpoint resource.Endpoint
	search   func(T) []string
	totals   map[string]func(T) money.Amount
	defaults T
}

func define[T model.Entity](s blueprint[T]) Definition {
	return Definition{
		Slug:     s.slug,
		Module:   s.module,
		Title:    s.title,
		Endpoint: s.endpoint,
		build: func(deps Deps, sess domainauth.Session) (Handle, error) {
			client := resource.NewClient[T](deps.Backend, s.endpoint, resource.ScopeFromSession(sess))
			screen, err := viewmodel.NewScreen(viewmodel.ScreenOptions[T]{
				Module:       s.module,
				Capabilities: deps.Resolver.ForSession(sess, s.module),
				Store:        client,
				SearchFields: s.search,
				Totals:       s.totals,
				Defaults:     s.defaults,
				Binder:       deps.Binder,
				Timing:       deps.Timing,
				Clock:        deps.Clock,
				Logger:       deps.Logger,
				Recorder:     deps.Recorder,
			})
			if err != nil {
				return nil, fmt.Errorf("build %s screen: %w", s.module, err)
			}
			return handle[T]{screen}, nil
		},
	}
}

// Catalog returns every screen the console serves.
func Catalog() []Definition {
	return []Definition{
		define(blueprint[model.Account]{
			slug:   "accounts",
			module: ModuleAccounts,
			title:  "Chart of Accounts",
			endpoint: resource.Endpoint{
				Resource:     "account",
				ListPath:     "account/company/{companyId}",
				CompanyField: "company_id",
			},
			search: func(a model.Account) []string { return []string{a.Name, a.Code, a.Type} },
			totals: map[string]func(model.Account) money.Amount{
				"balance": func(a model.Account) money.Amount { return a.Balance },
			},
			defaults: model.Account{Type: "asset"},
		}),
		define(blueprint[model.Service]{
			slug:   "services",
			module: ModuleServices,
			title:  "Services",
			endpoint: resource.Endpoint{
				Resource:     "services",
				ListPath:     "services/company/{companyId}",
				CompanyField: "company_id",
			},
			search: func(s model.Service) []string { return []string{s.Name, s.SKU, s.Unit} },
			totals: map[string]func(model.Service) money.Amount{
				"price": func(s model.Service) money.Amount { return s.Price },
			},
		}),
		define(blueprint[model.Payslip]{
			slug:   "payslips",
			module: ModulePayslips,
			title:  "Payslips",
			endpoint: resource.Endpoint{
				Resource:     "payslip",
				ListPath:     "payslip/company/{companyId}",
				CompanyField: "company_id",
			},
			search: func(p model.Payslip) []string { return []string{p.EmployeeName, p.Period} },
			totals: map[string]func(model.Payslip) money.Amount{
				"gross_pay":  func(p model.Payslip) money.Amount { return p.GrossPay },
				"deductions": func(p model.Payslip) money.Amount { return p.Deductions },
				"net_pay":    func(p model.Payslip) money.Amount { return p.NetPay },
			},
		}),
		define(blueprint[model.PayrollRequest]{
			slug:   "payroll",
			module: ModulePayroll,
			title:  "Payroll Requests",
			endpoint: resource.Endpoint{
				Resource:     "payrollRequest",
				CompanyQuery: "companyId",
				CompanyField: "companyId",
			},
			search: func(p model.PayrollRequest) []string {
				return []string{p.EmployeeName, p.Month, string(p.Status)}
			},
			totals: map[string]func(model.PayrollRequest) money.Amount{
				"amount": func(p model.PayrollRequest) money.Amount { return p.Amount },
			},
			defaults: model.PayrollRequest{Status: model.PayrollPending},
		}),
		define(blueprint[model.Settlement]{
			slug:   "settlements",
			module: ModuleSettlements,
			title:  "Settlements",
			endpoint: resource.Endpoint{
				Resource:     "settlement",
				ListPath:     "settlement/company/{companyId}",
				CompanyField: "company_id",
			},
			search: func(s model.Settlement) []string { return []string{s.EmployeeName, s.Date, s.Reason} },
			totals: map[string]func(model.Settlement) money.Amount{
				"amount": func(s model.Settlement) money.Amount { return s.Amount },
			},
		}),
		define(blueprint[model.Voucher]{
			slug:   "vouchers",
			module: ModuleVouchers,
			title:  "Vouchers",
			endpoint: resource.Endpoint{
				Resource:     "vouchers",
				ListPath:     "vouchers/company/{companyId}",
				CompanyField: "company_id",
			},
			search: func(v model.Voucher) []string {
				return []string{v.Number, v.PartyName, string(v.Type), v.Narration}
			},
			totals: map[string]func(model.Voucher) money.Amount{
				"amount": func(v model.Voucher) money.Amount { return v.Amount },
			},
			defaults: model.Voucher{Type: model.VoucherSales},
		}),
		define(blueprint[model.UserRole]{
			slug:   "user-roles",
			module: ModuleUserRoles,
			title:  "User Roles",
			endpoint: resource.Endpoint{
				Resource:     "user-roles",
				CompanyQuery: "company_id",
				CompanyField: "company_id",
			},
			search: func(r model.UserRole) []string { return []string{r.Name, r.Description} },
		}),
	}
}

// Validate checks the definitions are unique and their endpoints well formed.
func Validate(defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.Slug == "" || d.Module == "" || d.build == nil {
			return fmt.Errorf("screen definition %q is incomplete", d.Slug)
		}
		if seen[d.Slug] {
			return fmt.Errorf("duplicate screen slug %q", d.Slug)
		}
		seen[d.Slug] = true
		if err := d.Endpoint.Validate(); err != nil {
			return fmt.Errorf("screen %s: %w", d.Slug, err)
		}
	}
	return nil
}
