package handler

import (
	"net/http"

	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// RouteInfo description d'une route publiée dans l'index
type RouteInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Auth        bool   `json:"auth"`
}

// RouteGroup routes d'une même section de l'API
type RouteGroup struct {
	Name   string      `json:"name"`
	Routes []RouteInfo `json:"routes"`
}

// RouteIndex est rempli par le routeur au démarrage
var RouteIndex []RouteGroup

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]interface{}{
		"name":    "SentinelShe API",
		"version": "1.0.0",
		"status":  "running",
		"routes":  RouteIndex,
		"documentation": map[string]string{
			"description": "API REST pour SentinelShe - sécurité communautaire: signalements, histoires, academy et armory",
		},
	})
}
