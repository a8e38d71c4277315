package handler

import (
	"errors"
	"net/http"

	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create account", err)
		return
	}

	user, err := utils.CreateUser(r.Context(), req.Name, req.Email, hash)
	if errors.Is(err, utils.ErrConflict) {
		utils.ErrorSimple(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create account", err)
		return
	}

	ip, ua := utils.ExtractIPAndUserAgent(r)
	token, expiresAt, err := utils.CreateSession(r.Context(), user.ID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Created(w, model.AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	user, hash, err := utils.FindUserByEmailWithPassword(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			logger.Error("Login: %v", err)
		}
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !utils.CheckPassword(hash, req.Password) {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, ua := utils.ExtractIPAndUserAgent(r)
	token, expiresAt, err := utils.CreateSession(r.Context(), user.ID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, model.AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.FromError(w, err, "could not logout")
		return
	}

	utils.Message(w, "logged out")
}
