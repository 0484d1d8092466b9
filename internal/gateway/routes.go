package gateway

// Route describes one forwarding rule: requests whose path matches Pattern
// are sent to Target with StripPrefix removed from the path. Public routes
// skip token validation; everything else requires a valid bearer token.
type Route struct {
	Pattern     string
	Target      targetService
	StripPrefix string
	Public      bool
}

// targetService names a configured backend so routes stay declarative and the
// actual URLs live in configuration.
type targetService string

const (
	targetAuth targetService = "auth"
	targetJobs targetService = "jobs"
)

// defaultRoutes is the gateway's forwarding table. It is resolved against the
// configured service URLs at startup; an unknown target fails construction
// rather than a request.
func defaultRoutes() []Route {
	return []Route{
		{Pattern: "/api/auth/", Target: targetAuth, StripPrefix: "/api/auth", Public: true},
		{Pattern: "/api/clones", Target: targetJobs, StripPrefix: "/api"},
		{Pattern: "/api/clones/", Target: targetJobs, StripPrefix: "/api"},
	}
}
