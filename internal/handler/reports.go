package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/database"
	"github.com/harshitSingh1/SentinelShe/internal/geo"
	"github.com/harshitSingh1/SentinelShe/internal/logger"
	"github.com/harshitSingh1/SentinelShe/internal/middleware"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/observability"
	"github.com/harshitSingh1/SentinelShe/internal/scanner"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
	"github.com/harshitSingh1/SentinelShe/internal/votes"
	"github.com/jackc/pgx/v5"
)

const (
	defaultReportLimit = 50
	maxReportLimit     = 200
	maxUploadBytes     = 10 << 20
)

const reportFrom = ` FROM reports r INNER JOIN users u ON u.id = r.user_id`

// listReports charge les signalements les plus récents. Avec withCoordinates,
// seuls ceux qui ont des coordonnées sont chargés et la limite n'est pas
// appliquée en SQL (le filtre de distance passe avant).
func listReports(ctx context.Context, f model.ReportFilter, withCoordinates bool) ([]model.Report, error) {
	query := `SELECT ` + scanner.ReportColumns + reportFrom + ` WHERE TRUE`
	args := []interface{}{}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND r.category = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if withCoordinates {
		query += " AND r.latitude IS NOT NULL AND r.longitude IS NOT NULL"
	}
	query += " ORDER BY r.created_at DESC"
	if !withCoordinates {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		report, err := scanner.ScanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func loadReport(ctx context.Context, id string) (*model.Report, error) {
	report, err := scanner.ScanReport(database.DB.QueryRow(ctx,
		`SELECT `+scanner.ReportColumns+reportFrom+` WHERE r.id = $1`, id,
	))
	if err != nil {
		return nil, utils.DBError(err, "report")
	}
	return report, nil
}

// GetReports liste les signalements, filtrés par distance si lat et lng sont fournis
func GetReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ReportFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Limit:    utils.QueryInt(r, "limit", defaultReportLimit, 1, maxReportLimit),
	}
	center, nearby := geo.ParseCenter(q.Get("lat"), q.Get("lng"))

	reports, err := listReports(r.Context(), filter, nearby)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch reports", err)
		return
	}

	if nearby {
		radius := geo.ParseRadius(q.Get("radius"), DefaultRadiusKm)
		reports = geo.Nearby(reports, center, radius)
		if len(reports) > filter.Limit {
			reports = reports[:filter.Limit]
		}
	}

	utils.Success(w, map[string]interface{}{
		"reports": reports,
		"total":   len(reports),
	})
}

func CreateReport(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateReportRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	incidentDate := time.Now()
	if req.IncidentDate != nil {
		incidentDate = *req.IncidentDate
	}

	ctx := r.Context()
	id := uuid.NewString()
	err := database.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reports (id, user_id, title, description, category, location,
				latitude, longitude, incident_date, is_anonymous, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			id, user.ID, req.Title, req.Description, req.Category, req.Location,
			req.Latitude, req.Longitude, incidentDate, req.IsAnonymous, model.ReportPending,
		); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		_, err := utils.AdjustStat(ctx, tx, user.ID, model.StatReportsFiled, 1)
		return err
	})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to submit report", err)
		return
	}
	observability.ReportsFiled.WithLabelValues(req.Category).Inc()
	logger.Info("Report %s filed by %s", id, user.ID)

	report, err := loadReport(ctx, id)
	if err != nil {
		utils.FromError(w, err, "failed to load report")
		return
	}
	utils.Created(w, report)
}

func GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := loadReport(r.Context(), id)
	if err != nil {
		utils.FromError(w, err, "failed to fetch report")
		return
	}

	comments, err := listComments(r.Context(), model.EntityTypeReport, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch comments", err)
		return
	}
	report.Comments = comments

	utils.Success(w, report)
}

// UpdateReport applique une action: verify et dismiss sont réservés aux
// modérateurs, upvote équivaut à un vote positif
func UpdateReport(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	var req model.ReportActionRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Action == "upvote" {
		result, err := utils.CastReportVote(r.Context(), user.ID, id, votes.Up)
		if err != nil {
			utils.FromError(w, err, "failed to record vote")
			return
		}
		utils.Success(w, result)
		return
	}

	moderate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		moderateReport(w, r, user, id, req.Action)
	})
	middleware.RequireRole(model.ModeratorRoles...)(moderate).ServeHTTP(w, r)
}

// moderateReport applique verify ou dismiss
func moderateReport(w http.ResponseWriter, r *http.Request, user model.UserProfile, id, action string) {
	status, verified := model.ReportVerified, true
	if action == "dismiss" {
		status, verified = model.ReportDismissed, false
	}

	tag, err := database.DB.Exec(r.Context(),
		`UPDATE reports SET status = $1, is_verified = $2, updated_at = NOW() WHERE id = $3`,
		status, verified, id,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to update report", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "report not found")
		return
	}
	logger.Info("Report %s set to %s by %s", id, status, user.ID)

	report, err := loadReport(r.Context(), id)
	if err != nil {
		utils.FromError(w, err, "failed to load report")
		return
	}
	utils.Success(w, report)
}

// VoteReport applique un vote up/down; revoter dans le même sens annule le vote
func VoteReport(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ReportVoteRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}
	direction, err := votes.ParseDirection(req.VoteType)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := utils.CastReportVote(r.Context(), user.ID, req.ReportID, direction)
	if err != nil {
		utils.FromError(w, err, "failed to record vote")
		return
	}
	utils.Success(w, result)
}

// GetMyReportVotes retourne les signalements votés par l'utilisateur
func GetMyReportVotes(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	ballot, err := utils.GetReportBallot(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load votes", err)
		return
	}
	utils.Success(w, ballot)
}

// UploadReportMedia ajoute une image au signalement (propriétaire uniquement)
func UploadReportMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if Media == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "media uploads are not configured")
		return
	}
	id := mux.Vars(r)["id"]

	report, err := loadReport(r.Context(), id)
	if err != nil {
		utils.FromError(w, err, "failed to fetch report")
		return
	}
	if report.UserID != user.ID && !user.IsAdmin() {
		utils.ErrorSimple(w, http.StatusForbidden, "you can only add media to your own reports")
		return
	}

	url, ok := uploadImage(w, r, "reports", id)
	if !ok {
		return
	}

	var mediaURLs []string
	err = database.DB.QueryRow(r.Context(),
		`UPDATE reports SET media_urls = array_append(media_urls, $1), updated_at = NOW()
		 WHERE id = $2 RETURNING media_urls`,
		url, id,
	).Scan(&mediaURLs)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to attach media", err)
		return
	}

	utils.Success(w, map[string]interface{}{"mediaUrls": mediaURLs})
}

// uploadImage lit le champ "file" multipart et l'envoie au MediaUploader
func uploadImage(w http.ResponseWriter, r *http.Request, kind, entityID string) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "no file uploaded")
		return "", false
	}
	defer file.Close()

	switch header.Header.Get("Content-Type") {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
	default:
		utils.ErrorSimple(w, http.StatusBadRequest, "only JPEG, PNG and WebP images are allowed")
		return "", false
	}

	url, err := Media.UploadMedia(r.Context(), file, kind, entityID)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "media upload failed", err)
		return "", false
	}
	return url, true
}
