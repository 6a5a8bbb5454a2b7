package model

// User is the advisory user-info blob returned by the backend on login.
// Its shape is backend-defined; absence never affects authentication state.
type User map[string]any

// Session is the authenticated identity state. Token presence is the single
// source of truth for "authenticated"; User is display metadata only.
type Session struct {
	Token string
	User  User
}

func (s Session) Active() bool {
	return s.Token != ""
}

// LoginRequest for the login form. Both fields are enforced non-empty by the
// form layer before the auth service is called.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the backend login payload.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginResult is returned to the UI by the auth service.
type LoginResult struct {
	Success bool   `json:"success"`
	User    User   `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LogoutResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TokenClaims is a best-effort, unverified decode of the bearer token for
// display purposes. The token itself stays opaque for all auth decisions.
type TokenClaims struct {
	Subject   string
	ExpiresAt int64
	IssuedAt  int64
}
