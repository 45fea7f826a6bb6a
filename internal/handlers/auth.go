// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"promptstash/internal/activity"
	"promptstash/internal/apperror"
	"promptstash/internal/auth"
	"promptstash/internal/models"
	"promptstash/internal/store"
)

// Auth groups the identity-flow handlers: signup, signin, email
// verification codes, and the authenticated identity echo.
type Auth struct {
	users    *store.UserStore
	tokens   *auth.TokenService
	codes    *auth.CodeStore
	recorder *activity.Recorder
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *auth.TokenService, codes *auth.CodeStore, recorder *activity.Recorder) *Auth {
	return &Auth{users: users, tokens: tokens, codes: codes, recorder: recorder}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is returned by both signup and signin.
type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new account and issues a token.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if !validEmail(req.Email) {
		respondError(w, apperror.ValidationFailed("email", "invalid email address"))
		return
	}
	if len(req.Password) < 8 {
		respondError(w, apperror.ValidationFailed("password", "password must be at least 8 characters"))
		return
	}
	if err := requireText("name", req.Name, maxNameLen); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.users.Create(req.Email, req.Password, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	a.recorder.Record(models.ActionSignup, &user.ID, nil, "")
	respondJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Signin verifies credentials and issues a token. Unknown email and
// wrong password produce the same response.
func (a *Auth) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondError(w, apperror.Unauthorized("invalid email or password"))
		return
	}

	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	a.recorder.Record(models.ActionSignin, &user.ID, nil, "")
	respondJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

type sendVerificationRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SendVerification issues a short-lived verification code for the
// email. Delivery is out of band; in dev mode the code is echoed in
// the response so the flow can be exercised without a mailer.
func (a *Auth) SendVerification(w http.ResponseWriter, r *http.Request) {
	var req sendVerificationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !validEmail(req.Email) {
		respondError(w, apperror.ValidationFailed("email", "invalid email address"))
		return
	}

	code, err := a.codes.Issue(r.Context(), req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("verification code issued", "email", req.Email)

	resp := map[string]string{"status": "sent"}
	if devMode {
		resp["code"] = code
	}
	respondJSON(w, http.StatusOK, resp)
}

// VerifyCode checks and consumes a verification code.
func (a *Auth) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ok, err := a.codes.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, apperror.ValidationFailed("code", "invalid or expired code"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// Me echoes the authenticated user's record.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, apperror.Unauthorized("authentication required"))
		return
	}

	user, err := a.users.FindByID(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		// Valid token for a deleted account.
		respondError(w, apperror.Unauthorized("account no longer exists"))
		return
	}
	respondJSON(w, http.StatusOK, user)
}
