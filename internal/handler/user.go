package handler

import (
	"net/http"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

func GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	utils.Success(w, user)
}

func UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Phone = utils.StringOrNil(req.Phone)
	req.City = utils.StringOrNil(req.City)
	req.Country = utils.StringOrNil(req.Country)

	updated, err := utils.UpdateUserProfile(r.Context(), user.ID, req)
	if err != nil {
		utils.FromError(w, err, "could not update profile")
		return
	}
	utils.Success(w, updated)
}
