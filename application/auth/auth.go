package auth

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"iusearch/constant"
	"iusearch/gateway"
	"iusearch/model"
	"iusearch/repository/credential"
	"iusearch/utils/errors"
	"iusearch/utils/logger"
)

const loginFallbackMessage = "Login failed. Please check your credentials and connection."

// AuthApp owns the session lifecycle: acquiring the token on login, clearing
// it on logout, and answering the single authoritative question of whether a
// session is active.
type AuthApp interface {
	Login(ctx context.Context, username, password string) *model.LoginResult
	Logout(ctx context.Context) *model.LogoutResult
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) model.User
	TokenClaims(ctx context.Context) *model.TokenClaims
}

type authAppImpl struct {
	store credential.Store
	gw    *gateway.Client
}

func NewAuthApp(store credential.Store, gw *gateway.Client) AuthApp {
	return &authAppImpl{store: store, gw: gw}
}

// Login exchanges credentials for a bearer token and persists the session.
// A response without a token is a server-contract violation, not a
// credentials error. A failure persisting the user-info blob does not fail
// the login; the token is the operative fact.
func (s *authAppImpl) Login(ctx context.Context, username, password string) *model.LoginResult {
	var resp model.LoginResponse
	req := &model.LoginRequest{Username: username, Password: password}
	if err := s.gw.PostJSON(ctx, constant.EndpointLogin, req, &resp); err != nil {
		logger.Error("[Login] err backend login", zap.String("error", err.Error()))
		return &model.LoginResult{Success: false, Error: errors.UserMessage(err, loginFallbackMessage)}
	}

	if resp.Token == "" {
		logger.Warn("[Login] response missing token")
		return &model.LoginResult{Success: false, Error: constant.ErrorTypeMessage[constant.ErrInvalidResponse]}
	}

	if err := s.store.Set(ctx, constant.KeyAuthToken, resp.Token); err != nil {
		logger.Error("[Login] err persisting token", zap.String("error", err.Error()))
		return &model.LoginResult{Success: false, Error: errors.UserMessage(err, loginFallbackMessage)}
	}
	if resp.User != nil {
		if raw, err := json.Marshal(resp.User); err != nil {
			logger.Warn("[Login] err serializing user info", zap.String("error", err.Error()))
		} else if err := s.store.Set(ctx, constant.KeyUserInfo, string(raw)); err != nil {
			logger.Warn("[Login] err persisting user info", zap.String("error", err.Error()))
		}
	}

	return &model.LoginResult{Success: true, User: resp.User, Token: resp.Token}
}

// Logout clears both credential keys best-effort. A partial clear is not
// rolled back; key absence is the superset condition for "unauthenticated",
// so at most one stale key is acceptable. Logging out with no session is a
// no-op success.
func (s *authAppImpl) Logout(ctx context.Context) *model.LogoutResult {
	var firstErr error
	if err := s.store.Delete(ctx, constant.KeyAuthToken); err != nil {
		logger.Error("[Logout] err deleting token", zap.String("error", err.Error()))
		firstErr = err
	}
	if err := s.store.Delete(ctx, constant.KeyUserInfo); err != nil {
		logger.Error("[Logout] err deleting user info", zap.String("error", err.Error()))
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return &model.LogoutResult{Success: false, Error: errors.UserMessage(firstErr, constant.ErrorTypeMessage[constant.ErrStorage])}
	}
	return &model.LogoutResult{Success: true}
}

// IsAuthenticated is the single source of truth consulted by the navigation
// controller: the token key holds a non-empty value. Storage failure
// degrades to false.
func (s *authAppImpl) IsAuthenticated(ctx context.Context) bool {
	token, ok, err := s.store.Get(ctx, constant.KeyAuthToken)
	if err != nil {
		logger.Warn("[IsAuthenticated] err reading token", zap.String("error", err.Error()))
		return false
	}
	return ok && token != ""
}

// CurrentUser is a best-effort read of the stored user-info blob. Any
// storage or deserialization error yields nil.
func (s *authAppImpl) CurrentUser(ctx context.Context) model.User {
	raw, ok, err := s.store.Get(ctx, constant.KeyUserInfo)
	if err != nil || !ok {
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Debug("[CurrentUser] err deserializing user info", zap.String("error", err.Error()))
		return nil
	}
	return user
}

// TokenClaims decodes the stored token without verifying its signature, for
// advisory display only. The token stays opaque for every auth decision;
// any parse failure yields nil.
func (s *authAppImpl) TokenClaims(ctx context.Context) *model.TokenClaims {
	token, ok, err := s.store.Get(ctx, constant.KeyAuthToken)
	if err != nil || !ok || token == "" {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil
	}

	out := &model.TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	return out
}
