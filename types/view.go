package types

// ViewKind enumerates the dashboard views a route can resolve to. Each
// role has its own closed set; routes outside it resolve to ViewUnknown.
type ViewKind string

const (
	ViewAdminDashboard ViewKind = "admin_dashboard"
	ViewAdminCallLogs  ViewKind = "admin_call_logs"
	ViewAdminEmployees ViewKind = "admin_employees"
	ViewAdminAnalytics ViewKind = "admin_analytics"
	ViewAdminReports   ViewKind = "admin_reports"
	ViewAdminSettings  ViewKind = "admin_settings"

	ViewEmployeeDashboard ViewKind = "employee_dashboard"
	ViewEmployeeCalls     ViewKind = "employee_calls"
	ViewEmployeeSchedule  ViewKind = "employee_schedule"
	ViewEmployeeTags      ViewKind = "employee_tags"
	ViewEmployeeExports   ViewKind = "employee_exports"
	ViewEmployeeSettings  ViewKind = "employee_settings"

	// ViewUnknown is the fail-closed fallback for any route not in the
	// acting role's menu.
	ViewUnknown ViewKind = "unknown"
)

// MenuItem is a single entry in a role's navigation menu.
type MenuItem struct {
	// RouteID is the stable identifier of the route.
	RouteID string `json:"route_id"`

	// Label is the display name of the menu entry.
	Label string `json:"label"`
}
