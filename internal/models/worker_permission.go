package models

import "time"

// Feature names used in the worker permission matrix
const (
	FeatureCredits   = "credits"
	FeatureSales     = "sales"
	FeaturePayments  = "payments"
	FeatureProducts  = "products"
	FeatureExpenses  = "expenses"
	FeatureCustomers = "customers"
	FeatureReports   = "reports"
)

// Actions in the permission matrix
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// AllFeatures lists every permissioned feature, in display order
var AllFeatures = []string{
	FeatureCredits,
	FeatureSales,
	FeaturePayments,
	FeatureProducts,
	FeatureExpenses,
	FeatureCustomers,
	FeatureReports,
}

// WorkerPermission is one row of the (worker, feature) matrix.
// Absence of a row means no access at all for that feature.
type WorkerPermission struct {
	ID        int       `json:"id"`
	WorkerID  int       `json:"worker_id"`
	Feature   string    `json:"feature"`
	CanView   bool      `json:"can_view"`
	CanCreate bool      `json:"can_create"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Allows returns the boolean column for the given action.
func (p *WorkerPermission) Allows(action string) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// UpdatePermissionsRequest replaces a worker's whole permission matrix
type UpdatePermissionsRequest struct {
	Permissions []WorkerPermission `json:"permissions"`
}
