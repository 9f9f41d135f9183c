package server

import (
	"errors"
	"net/http"

	"youthwell/internal/app"
	"youthwell/pkg/domain"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}
	user, token, err := s.app.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, app.ErrEmailExists) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}
	user, token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleAnonymous(w http.ResponseWriter, r *http.Request) {
	var req anonymousRequest
	if !decodeValid(w, r, &req) {
		return
	}
	user, token, err := s.app.Anonymous(req.DisplayName)
	if err != nil {
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "Anonymous session created",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	profile, err := s.app.Profile(user.ID)
	if err != nil {
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req profileUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	updated, err := s.app.UpdateProfile(user.ID, req.DisplayName)
	if err != nil {
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req convertRequest
	if !decodeValid(w, r, &req) {
		return
	}
	updated, token, err := s.app.Convert(user.ID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrAlreadyRegistered) || errors.Is(err, app.ErrEmailInUse) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Account converted successfully",
		Token:   token,
		User:    updated,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, _ *http.Request, user domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  user,
	})
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type anonymousRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
}

type profileUpdateRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

type convertRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}
