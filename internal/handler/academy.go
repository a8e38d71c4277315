package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/catalog"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// GetQuickTips conseils rapides, filtrables par catégorie, situation et mise en avant
func GetQuickTips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tips := catalog.Default().Tips(model.AcademyFilter{
		Category:  q.Get("category"),
		Situation: q.Get("situation"),
		Featured:  utils.QueryBool(r, "featured"),
	})
	utils.Success(w, map[string]interface{}{
		"tips":       tips,
		"categories": catalog.Default().TipCategories,
	})
}

func GetMoves(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, catalog.Default().ListMoves(r.URL.Query().Get("difficulty")))
}

func GetChecklists(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, catalog.Default().ListChecklists(r.URL.Query().Get("category")))
}

func GetScenarios(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, catalog.Default().ListScenarios(r.URL.Query().Get("situation")))
}

func GetCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	utils.Success(w, catalog.Default().ListCourses(q.Get("category"), q.Get("level")))
}

func GetCourse(w http.ResponseWriter, r *http.Request) {
	course, ok := catalog.Default().Course(mux.Vars(r)["id"])
	if !ok {
		utils.ErrorSimple(w, http.StatusNotFound, "course not found")
		return
	}
	utils.Success(w, course)
}

// toggleCatalogItem bascule l'enregistrement d'un élément du catalogue
// après avoir vérifié qu'il existe
func toggleCatalogItem(itemType model.ItemType, exists func(id string) bool, notFound string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r)
		if !ok {
			return
		}

		id := mux.Vars(r)["id"]
		if !exists(id) {
			utils.ErrorSimple(w, http.StatusNotFound, notFound)
			return
		}

		result, err := utils.ToggleSavedItem(r.Context(), user.ID, itemType, id)
		if err != nil {
			utils.FromError(w, err, "failed to update saved items")
			return
		}
		utils.Success(w, result)
	}
}

var (
	// SaveTip enregistre ou retire un conseil (tips_saved)
	SaveTip = toggleCatalogItem(model.ItemTip, func(id string) bool {
		_, ok := catalog.Default().Tip(id)
		return ok
	}, "tip not found")

	// PracticeMove marque ou démarque un mouvement comme pratiqué (moves_learned)
	PracticeMove = toggleCatalogItem(model.ItemMove, func(id string) bool {
		_, ok := catalog.Default().Move(id)
		return ok
	}, "move not found")
)

// checklistFor charge la checklist du chemin ou écrit une 404
func checklistFor(w http.ResponseWriter, r *http.Request) (model.Checklist, bool) {
	list, ok := catalog.Default().Checklist(mux.Vars(r)["id"])
	if !ok {
		utils.ErrorSimple(w, http.StatusNotFound, "checklist not found")
	}
	return list, ok
}

func ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, ok := checklistFor(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "item index must be an integer")
		return
	}

	progress, err := utils.ToggleChecklistItem(r.Context(), user.ID, list.ID, index, len(list.Items))
	if err != nil {
		utils.FromError(w, err, "failed to update checklist")
		return
	}
	utils.Success(w, progress)
}

func GetChecklistProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, ok := checklistFor(w, r)
	if !ok {
		return
	}

	progress, err := utils.GetChecklistProgress(r.Context(), user.ID, list.ID, len(list.Items))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch checklist progress", err)
		return
	}
	utils.Success(w, progress)
}
