package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harshitSingh1/SentinelShe/internal/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response: %v", err)
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

// Error renvoie msg au client; les erreurs internes passées en argument sont
// seulement loggées
func Error(w http.ResponseWriter, status int, msg string, errs ...error) {
	if len(errs) > 0 && errs[0] != nil {
		logger.Error("[%d] %s: %v", status, msg, errs[0])
	} else {
		logger.Warning("[%d] %s", status, msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

func ErrorSimple(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}

// FromError traduit une erreur de la couche données en réponse HTTP
func FromError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		ErrorSimple(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		ErrorSimple(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrConflict):
		ErrorSimple(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalid):
		ErrorSimple(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, fallback, err)
	}
}
