package handler

import (
	"net/http"

	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// GetLeaderboard classement par safety score, noms anonymes masqués
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := utils.QueryInt(r, "limit", 10, 1, 100)

	entries, err := utils.GetLeaderboard(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load leaderboard", err)
		return
	}
	utils.Success(w, entries)
}
