package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/jobdesk/marketplace-api/internal/handler"    // import the handlers that implement business logic
	"github.com/jobdesk/marketplace-api/internal/middleware" // import middleware for JWT authentication, rate limiting and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /api, while
// protected endpoints reuse the same prefix behind the JWT middleware.
// The optional rateLimit middleware is applied to the credential endpoints
// so that brute-force attempts are throttled per caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	// Create a route group under the /api prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/api")
	if rateLimit != nil {
		g.Use(rateLimit)
	}
	// Register a POST endpoint to handle user registration at /api/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /api/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to issue a new access token at /api/refresh.
	// The refresh token itself is not rotated by this operation.
	g.POST("/refresh", a.Refresh)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.
	auth := e.Group("/api")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a POST endpoint to log out.  The handler accepts an optional
	// JSON body containing a `refresh_token`; when present only that token is
	// revoked, otherwise every refresh token of the caller is invalidated.
	auth.POST("/logout", a.Logout)
	// Register a GET endpoint at /api/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterJobs registers the job marketplace endpoints.  Listing endpoints
// are read-heavy and therefore sit behind the optional response cache; all
// routes require a valid access token.
func RegisterJobs(e *echo.Echo, h *handler.JobHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/jobs")
	g.Use(middleware.JWTAuth(jwtSecret))

	// List all jobs, optionally filtered with the ?status= query parameter.
	if cache != nil {
		g.GET("", h.List, cache)
		// Convenience listing of jobs that are still open for assignment.
		g.GET("/available", h.Available, cache)
	} else {
		g.GET("", h.List)
		g.GET("/available", h.Available)
	}
	// Fetch a single job by its numeric id.
	g.GET("/:id", h.Get)
	// Create a new job posting.
	g.POST("", h.Create)
	// Update an existing job.  PUT and PATCH behave identically: only the
	// fields present in the body are applied.
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	// Delete a job together with any assignments that reference it.
	g.DELETE("/:id", h.Delete)
}

// RegisterAssignments registers the job assignment workflow endpoints.  Every
// route requires authentication and operates on assignments owned by the
// caller only.
func RegisterAssignments(e *echo.Echo, h *handler.AssignmentHandler, jwtSecret string) {
	g := e.Group("/api/assignments")
	g.Use(middleware.JWTAuth(jwtSecret))

	// List the caller's assignments; /my is an alias kept for clients that
	// prefer the explicit form.
	g.GET("", h.List)
	g.GET("/my", h.List)
	// Fetch a single assignment with its embedded user and job details.
	g.GET("/:id", h.Get)
	// Claim an available job and schedule it for the caller.
	g.POST("", h.Create)
	// Mark an assignment as completed with an assessment and rating.
	g.POST("/:id/complete", h.Complete)
	// Remove an assignment; non-completed assignments reopen their job.
	g.DELETE("/:id", h.Delete)
}

// RegisterProducts registers the per-user product catalogue endpoints.  All
// operations are scoped to the authenticated owner.
func RegisterProducts(e *echo.Echo, h *handler.ProductHandler, jwtSecret string) {
	g := e.Group("/api/products")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	// PUT and PATCH share the same partial-update handler.
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
