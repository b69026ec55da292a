package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/module"
)

type route struct {
	Name    string
	Method  string
	Pattern string
	Handler ApiHandlerFunc
}

var Routes = []route{{
	Method:  http.MethodPost,
	Pattern: "/members/{address}/sessions/{index}/verify",
	Name:    "verifySession",
	Handler: VerifySession,
}, {
	Method:  http.MethodGet,
	Pattern: "/members/{address}/eligibility",
	Name:    "getEligibility",
	Handler: GetEligibility,
}, {
	Method:  http.MethodGet,
	Pattern: "/members/{address}/sessions",
	Name:    "getSessions",
	Handler: GetSessions,
}, {
	Method:  http.MethodGet,
	Pattern: "/members/{address}",
	Name:    "getMember",
	Handler: GetMember,
}, {
	Method:  http.MethodGet,
	Pattern: "/groups/{id}",
	Name:    "getGroup",
	Handler: GetGroup,
}, {
	Method:  http.MethodGet,
	Pattern: "/groups",
	Name:    "getGroups",
	Handler: GetGroups,
}}

// NewRouter returns the router of the versioned API.
func NewRouter(backend Backend, logger zerolog.Logger, restCollector module.RestMetrics) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	v1SubRouter := router.PathPrefix("/v1").Subrouter()

	// common middleware for all request
	v1SubRouter.Use(LoggingMiddleware(logger))
	v1SubRouter.Use(MetricsMiddleware(restCollector))

	for _, r := range Routes {
		h := NewHandler(logger, backend, r.Handler)
		v1SubRouter.
			Methods(r.Method).
			Path(r.Pattern).
			Name(r.Name).
			Handler(h)
	}

	return router
}
