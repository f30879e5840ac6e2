// Package views maps an authenticated role to its reachable dashboard
// views. The mapping is a pure function of role and route; unrecognized
// routes fail closed to the unknown view, never to another role's view.
package views

import "github.com/dialpro/apiserver/types"

var adminMenu = []types.MenuItem{
	{RouteID: "dashboard", Label: "Dashboard"},
	{RouteID: "calls", Label: "Call Logs"},
	{RouteID: "employees", Label: "Employees"},
	{RouteID: "analytics", Label: "Analytics"},
	{RouteID: "reports", Label: "Reports"},
	{RouteID: "settings", Label: "Settings"},
}

var employeeMenu = []types.MenuItem{
	{RouteID: "dashboard", Label: "Dashboard"},
	{RouteID: "calls", Label: "My Calls"},
	{RouteID: "schedule", Label: "Follow-ups"},
	{RouteID: "tags", Label: "Call Tags"},
	{RouteID: "exports", Label: "Export Data"},
	{RouteID: "settings", Label: "Settings"},
}

var routeTable = map[types.Role]map[string]types.ViewKind{
	types.RoleAdmin: {
		"dashboard": types.ViewAdminDashboard,
		"calls":     types.ViewAdminCallLogs,
		"employees": types.ViewAdminEmployees,
		"analytics": types.ViewAdminAnalytics,
		"reports":   types.ViewAdminReports,
		"settings":  types.ViewAdminSettings,
	},
	types.RoleEmployee: {
		"dashboard": types.ViewEmployeeDashboard,
		"calls":     types.ViewEmployeeCalls,
		"schedule":  types.ViewEmployeeSchedule,
		"tags":      types.ViewEmployeeTags,
		"exports":   types.ViewEmployeeExports,
		"settings":  types.ViewEmployeeSettings,
	},
}

// Menu returns the ordered navigation entries for the role. Unknown
// roles get an empty menu.
func Menu(role types.Role) []types.MenuItem {
	var src []types.MenuItem
	switch role {
	case types.RoleAdmin:
		src = adminMenu
	case types.RoleEmployee:
		src = employeeMenu
	default:
		return nil
	}
	out := make([]types.MenuItem, len(src))
	copy(out, src)
	return out
}

// Resolve maps a role and route to the permitted view. Any route not in
// the role's menu resolves to ViewUnknown.
func Resolve(role types.Role, routeID string) types.ViewKind {
	routes, ok := routeTable[role]
	if !ok {
		return types.ViewUnknown
	}
	view, ok := routes[routeID]
	if !ok {
		return types.ViewUnknown
	}
	return view
}
