package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/handler"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	method      string
	path        string
	handle      http.HandlerFunc
	auth        bool
	description string
}

type group struct {
	name   string
	routes []route
}

// table des routes; l'ordre compte quand un chemin fixe partage un préfixe
// avec un chemin paramétré (/armory/products/featured avant {id})
var groups = []group{
	{"root", []route{
		{http.MethodGet, "/", handler.RootHandler, false, "Index des routes"},
		{http.MethodGet, "/health", handler.HealthCheck, false, "Health check de l'API"},
	}},
	{"auth", []route{
		{http.MethodPost, "/auth/register", handler.Register, false, "Inscription utilisateur"},
		{http.MethodPost, "/auth/login", handler.Login, false, "Connexion utilisateur"},
		{http.MethodPost, "/auth/logout", handler.Logout, true, "Déconnexion utilisateur"},
	}},
	{"users", []route{
		{http.MethodGet, "/users/me", handler.GetMe, true, "Profil de l'utilisateur connecté"},
		{http.MethodPatch, "/users/me", handler.UpdateMe, true, "Mettre à jour son profil"},
		{http.MethodGet, "/leaderboard", handler.GetLeaderboard, false, "Classement par score de sécurité (params: limit)"},
	}},
	{"reports", []route{
		{http.MethodGet, "/reports", handler.GetReports, false, "Signalements récents (params: limit, lat, lng, radius, category, status)"},
		{http.MethodPost, "/reports", handler.CreateReport, true, "Créer un signalement"},
		{http.MethodPost, "/reports/vote", handler.VoteReport, true, "Voter sur un signalement (up/down)"},
		{http.MethodGet, "/reports/votes/me", handler.GetMyReportVotes, true, "Votes de l'utilisateur connecté"},
		{http.MethodGet, "/reports/{id}", handler.GetReport, false, "Signalement avec ses commentaires"},
		{http.MethodPatch, "/reports/{id}", handler.UpdateReport, true, "Action sur un signalement (verify, dismiss, upvote)"},
		{http.MethodPost, "/reports/{id}/media", handler.UploadReportMedia, true, "Ajouter une image au signalement"},
		{http.MethodGet, "/reports/{id}/comments", handler.GetReportComments, false, "Commentaires d'un signalement"},
		{http.MethodPost, "/reports/{id}/comments", handler.CreateReportComment, true, "Commenter un signalement"},
	}},
	{"stories", []route{
		{http.MethodGet, "/stories", handler.GetStories, false, "Histoires paginées (params: category, tag, page, limit)"},
		{http.MethodPost, "/stories", handler.CreateStory, true, "Partager une histoire"},
		{http.MethodGet, "/stories/{id}", handler.GetStory, false, "Histoire avec ses commentaires"},
		{http.MethodPut, "/stories/{id}", handler.UpdateStory, true, "Modifier une histoire (auteur ou admin)"},
		{http.MethodDelete, "/stories/{id}", handler.DeleteStory, true, "Supprimer une histoire (auteur ou admin)"},
		{http.MethodPost, "/stories/{id}", handler.StoryAction, true, "Upvote ou save (toggle)"},
		{http.MethodPost, "/stories/{id}/media", handler.UploadStoryMedia, true, "Ajouter une image à l'histoire"},
		{http.MethodGet, "/stories/{id}/comments", handler.GetStoryComments, false, "Commentaires d'une histoire"},
		{http.MethodPost, "/stories/{id}/comments", handler.CreateStoryComment, true, "Commenter une histoire"},
		{http.MethodPost, "/comments/{id}/upvote", handler.UpvoteComment, true, "Upvote d'un commentaire (toggle)"},
	}},
	{"academy", []route{
		{http.MethodGet, "/academy/quick-tips", handler.GetQuickTips, false, "Conseils rapides (params: category, situation, featured)"},
		{http.MethodPost, "/academy/quick-tips/{id}/save", handler.SaveTip, true, "Enregistrer un conseil (toggle)"},
		{http.MethodGet, "/academy/moves", handler.GetMoves, false, "Mouvements de protection (params: difficulty)"},
		{http.MethodPost, "/academy/moves/{id}/practice", handler.PracticeMove, true, "Marquer un mouvement comme pratiqué (toggle)"},
		{http.MethodGet, "/academy/checklists", handler.GetChecklists, false, "Checklists (params: category)"},
		{http.MethodGet, "/academy/checklists/{id}/progress", handler.GetChecklistProgress, true, "Progression d'une checklist"},
		{http.MethodPost, "/academy/checklists/{id}/items/{index}", handler.ToggleChecklistItem, true, "Cocher ou décocher un élément"},
		{http.MethodGet, "/academy/scenarios", handler.GetScenarios, false, "Scénarios (params: situation)"},
		{http.MethodGet, "/academy/courses", handler.GetCourses, false, "Cours (params: category, level)"},
		{http.MethodGet, "/academy/courses/{id}", handler.GetCourse, false, "Cours avec ses leçons"},
	}},
	{"armory", []route{
		{http.MethodGet, "/armory/categories", handler.GetCategories, false, "Catégories avec le nombre de produits"},
		{http.MethodGet, "/armory/products", handler.GetProducts, false, "Produits (params: category, legality, price, q, bestFor)"},
		{http.MethodGet, "/armory/products/featured", handler.GetFeaturedProducts, false, "Produits en vedette"},
		{http.MethodGet, "/armory/products/{id}", handler.GetProduct, false, "Détail d'un produit"},
		{http.MethodPost, "/armory/products/{id}/save", handler.SaveProduct, true, "Enregistrer un produit (toggle)"},
	}},
	{"dashboard", []route{
		{http.MethodGet, "/dashboard/stats", handler.GetDashboardStats, true, "Score, niveau et compteurs"},
		{http.MethodGet, "/dashboard/activity", handler.GetDashboardActivity, true, "Activité récente (params: limit)"},
		{http.MethodGet, "/dashboard/saved", handler.GetDashboardSaved, true, "Aperçu des éléments enregistrés"},
		{http.MethodPost, "/dashboard/recompute", handler.RecomputeStats, true, "Recalculer les compteurs (params: userId, admin)"},
	}},
}

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	index := make([]handler.RouteGroup, 0, len(groups))
	for _, g := range groups {
		infos := make([]handler.RouteInfo, 0, len(g.routes))
		for _, rt := range g.routes {
			if rt.auth {
				authenticatedRoutes.HandleFunc(rt.path, rt.handle).Methods(rt.method)
			} else {
				r.HandleFunc(rt.path, rt.handle).Methods(rt.method)
			}
			infos = append(infos, handler.RouteInfo{
				Method:      rt.method,
				Path:        rt.path,
				Description: rt.description,
				Auth:        rt.auth,
			})
		}
		index = append(index, handler.RouteGroup{Name: g.name, Routes: infos})
	}
	handler.RouteIndex = index

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.ErrorSimple(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ErrorSimple(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
