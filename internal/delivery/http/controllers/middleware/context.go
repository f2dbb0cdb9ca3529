package middleware

// Keys under which middleware stores request-scoped values in the gin context.
const (
	ClaimsCtx    = "auth_claims"
	RequestIDCtx = "request_id"
)
