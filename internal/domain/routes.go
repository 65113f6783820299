package domain

// Route is an application route path, matching the web frontend's routes
// so links printed by the CLI land on the same pages.
type Route string

const (
	RouteLogin          Route = "/login"
	RouteAdminHome      Route = "/admin/dashboard"
	RouteTechnicianHome Route = "/technician/dashboard-sensors"
	RouteUserHome       Route = "/user/dashboard-sensors"
)

// RoleHome maps a role to its default landing route. This is the single
// source of the mapping; login, the route guard and the root redirector
// must all go through it. An unknown role lands on the login route and is
// treated as an invalid session.
func RoleHome(r Role) Route {
	switch r {
	case RoleAdmin:
		return RouteAdminHome
	case RoleTechnician:
		return RouteTechnicianHome
	case RoleUser:
		return RouteUserHome
	default:
		return RouteLogin
	}
}
