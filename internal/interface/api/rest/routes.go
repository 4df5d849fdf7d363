package rest

import "user-accounts-api/internal/interface/api/rest/middleware"

const (
	// auth
	RouteAuth     = "/auth"
	RouteLogin    = RouteAuth + "/login"
	RouteRegister = RouteAuth + "/register"
	RouteLogout   = RouteAuth + "/logout"

	// users
	RouteUsers       = "/users"
	RouteCreateUser  = RouteUsers + "/create"
	RouteBulkCreate  = RouteUsers + "/bulkCreate"
	RouteGetAllUsers = RouteUsers + "/getAllUsers"
	RouteFindUsers   = RouteUsers + "/findUsers"
	RouteUser        = RouteUsers + "/:" + middleware.ParamID

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
