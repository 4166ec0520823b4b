// Package resource provides typed, company-scoped CRUD clients over ports.Backend.
package resource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/backend"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
)

// Path placeholders.
const (
	CompanyPlaceholder = "{companyId}"
	IDPlaceholder      = "{id}"
)

// Endpoint describes where one entity lives on the backend.
type Endpoint struct {
	// Resource is the collection root, e.g. "account" or "user-roles".
	Resource string
	// ListPath may contain {companyId}; defaults to Resource.
	ListPath string
	// ItemPath must contain {id}; defaults to Resource + "/{id}".
	ItemPath string
	// CompanyQuery names the query parameter carrying the company id on list calls.
	CompanyQuery string
	// CompanyField names the body field set to the company id on create and update.
	CompanyField string
	// DataPath is a JMESPath expression selecting the payload; empty uses the envelope default.
	DataPath string
}

// Validate checks the endpoint can be expanded.
func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.Resource) == "" {
		return fmt.Errorf("endpoint resource is required")
	}
	if e.ItemPath != "" && !strings.Contains(e.ItemPath, IDPlaceholder) {
		return fmt.Errorf("endpoint %s: item path %q lacks %s", e.Resource, e.ItemPath, IDPlaceholder)
	}
	return backend.ValidateDataPath(e.DataPath)
}

func (e Endpoint) listPath(companyID string) (string, url.Values) {
	p := e.ListPath
	if p == "" {
		p = e.Resource
	}
	p = strings.ReplaceAll(p, CompanyPlaceholder, url.PathEscape(companyID))

	var q url.Values
	if e.CompanyQuery != "" {
		q = url.Values{e.CompanyQuery: {companyID}}
	}
	return p, q
}

func (e Endpoint) itemPath(id model.ID) string {
	p := e.ItemPath
	if p == "" {
		p = strings.TrimSuffix(e.Resource, "/") + "/" + IDPlaceholder
	}
	return strings.ReplaceAll(p, IDPlaceholder, url.PathEscape(id.String()))
}
