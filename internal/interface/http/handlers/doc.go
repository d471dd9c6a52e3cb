// Package handlers holds the reusable pieces of the HTTP layer that are
// not tied to a single route: health checking, middleware, and API key
// authentication for the admin endpoints.
//
// # Health checks
//
// A CompositeHealthChecker runs named probes in parallel. Postgres is a
// required check; Redis is registered as optional because the API keeps
// serving from Postgres when the cache is down:
//
//	checker := handlers.NewCompositeHealthChecker("v1.0.0")
//	checker.AddCheck("database", handlers.NewDatabaseCheck(db))
//	checker.AddOptionalCheck("cache", handlers.NewCacheCheck(cache))
//
//	status := checker.Check(ctx)
//	if !status.Healthy {
//	    log.Printf("health check failed: %s", status.Message)
//	}
//
// GET /health reports status.Healthy, GET /ready reports status.Ready.
//
// # Middleware
//
// Middleware here wraps http.Handler and composes with ChainHandler:
//
//	auth := handlers.NewAPIKeyAuth("X-API-Key", []string{"secret-key"})
//
//	handler := handlers.ChainHandler(
//	    myHandler,
//	    handlers.TimeoutMiddleware(30*time.Second),
//	    handlers.SecurityHeadersMiddleware,
//	    auth.Middleware,
//	)
//
// The server applies NoCacheMiddleware globally since almost every
// response is per-learner progress data; the public leaderboard route
// overrides it with CacheControlMiddleware.
package handlers
