package middleware

// Context keys set by JWTAuth.
const (
    CtxSubject = "user_id"
    CtxRole    = "role"
)
