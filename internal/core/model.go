package core

import "time"

// Company is a tenant. Every business record in the system belongs to exactly
// one company, and every query is filtered by company id.
type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	NameLower          string    `json:"-"`
	Country            string    `json:"country"`
	Address            *string   `json:"address,omitempty"`
	RegistrationNumber *string   `json:"registration_number,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// ValidInvoiceStatus reports whether s is one of the fixed invoice statuses.
// Transitions themselves are unconstrained: any status may be set to any other.
func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ExpenseCategories is the fixed enumeration of business cost categories.
// The list is part of the API contract and of the AI tool input schema.
var ExpenseCategories = []string{
	"Salaries",
	"Rent",
	"Utilities",
	"Marketing",
	"Software",
	"Travel",
	"Office Supplies",
	"Insurance",
	"Professional Services",
	"Other",
}

// ValidExpenseCategory reports whether c is one of the fixed categories.
func ValidExpenseCategory(c string) bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"
)

// currencySymbols maps ISO country codes to display symbols. The symbol is a
// presentation attribute resolved from the tenant's country, not stored per
// transaction.
var currencySymbols = map[string]string{
	"US": "$",
	"CA": "C$",
	"GB": "£",
	"AU": "A$",
	"IN": "₹",
	"JP": "¥",
	"CN": "¥",
	"SG": "S$",
	"AE": "د.إ",
	"DE": "€",
	"FR": "€",
	"ES": "€",
	"IT": "€",
	"NL": "€",
	"BR": "R$",
	"MX": "$",
	"ZA": "R",
	"NG": "₦",
	"KE": "KSh",
	"PH": "₱",
}

// CurrencySymbol returns the display symbol for a country code, defaulting
// to "$" for unknown countries.
func CurrencySymbol(country string) string {
	if sym, ok := currencySymbols[country]; ok {
		return sym
	}
	return "$"
}
