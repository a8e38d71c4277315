package handler

import (
	"net/http"
	"testing"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportCols = []string{
	"id", "user_id", "title", "description", "category", "location",
	"latitude", "longitude", "incident_date", "is_anonymous", "is_verified", "status",
	"media_urls", "upvotes", "downvotes", "comment_count", "created_at", "updated_at",
	"name", "is_anonymous",
}

type reportFixture struct {
	id        string
	lat, lng  interface{}
	anonymous bool
}

func reportRows(fixtures ...reportFixture) *pgxmock.Rows {
	rows := pgxmock.NewRows(reportCols)
	for _, f := range fixtures {
		rows.AddRow(
			f.id, "u1", "Poorly lit underpass", "The streetlights have been out for a week now.",
			model.ReportCategory("UNSAFE_CONDITION"), "5th Ave",
			f.lat, f.lng, created, f.anonymous, false, model.ReportPending,
			"{}", 0, 0, 0, created, created,
			"Alice", false,
		)
	}
	return rows
}

func TestGetReports_DefaultLimit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("ORDER BY r.created_at DESC LIMIT").
		WithArgs(50).
		WillReturnRows(reportRows(
			reportFixture{id: "r1", lat: 40.7580, lng: -73.9855},
			reportFixture{id: "r2", anonymous: true},
		))

	w := serve(GetReports, request(http.MethodGet, "/reports", "", nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Reports []model.Report `json:"reports"`
		Total   int            `json:"total"`
	}
	decode(t, w, &data)
	assert.Equal(t, 2, data.Total)
	require.NotNil(t, data.Reports[0].User.Name)
	assert.Equal(t, "Alice", *data.Reports[0].User.Name)
	assert.Nil(t, data.Reports[1].User.Name)
	assert.True(t, data.Reports[1].User.IsAnonymous)
	assert.Nil(t, data.Reports[1].Latitude)
	assert.Equal(t, []string{}, data.Reports[0].MediaURLs)
}

func TestGetReports_Nearby(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("r.latitude IS NOT NULL").
		WithArgs("PENDING").
		WillReturnRows(reportRows(
			reportFixture{id: "times-square", lat: 40.7580, lng: -73.9855},
			reportFixture{id: "empire-state", lat: 40.7484, lng: -73.9857},
			reportFixture{id: "central-park", lat: 40.7829, lng: -73.9654},
		))

	w := serve(GetReports, request(http.MethodGet,
		"/reports?lat=40.7580&lng=-73.9855&radius=1&status=PENDING&limit=5", "", nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Reports []model.Report `json:"reports"`
		Total   int            `json:"total"`
	}
	decode(t, w, &data)
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "times-square", data.Reports[0].ID)
}

func TestGetReports_NearbyLimitAfterFilter(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("r.latitude IS NOT NULL").
		WillReturnRows(reportRows(
			reportFixture{id: "far", lat: 48.8566, lng: 2.3522},
			reportFixture{id: "a", lat: 40.7580, lng: -73.9855},
			reportFixture{id: "b", lat: 40.7581, lng: -73.9856},
		))

	w := serve(GetReports, request(http.MethodGet, "/reports?lat=40.7580&lng=-73.9855&limit=1", "", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Reports []model.Report `json:"reports"`
	}
	decode(t, w, &data)
	require.Len(t, data.Reports, 1)
	assert.Equal(t, "a", data.Reports[0].ID)
}

func TestCreateReport_RequiresUser(t *testing.T) {
	w := serve(CreateReport, request(http.MethodPost, "/reports", `{}`, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReport_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"description":"The streetlights have been out","category":"OTHER","location":"5th Ave"}`, "title is required"},
		{"bad category", `{"title":"Dark corner","description":"The streetlights have been out","category":"PARTY","location":"5th Ave"}`, "category must be one of"},
		{"latitude without longitude", `{"title":"Dark corner","description":"The streetlights have been out","category":"OTHER","location":"5th Ave","latitude":40.7}`, "longitude is required"},
		{"unknown field", `{"title":"Dark corner","status":"VERIFIED"}`, "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(CreateReport, request(http.MethodPost, "/reports", tt.body, nil, &alice))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w, nil).Error, tt.want)
		})
	}
}

func TestCreateReport(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reports").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("INSERT INTO user_stats").
		WithArgs("u1", 1).
		WillReturnRows(pgxmock.NewRows([]string{"t", "m", "c", "s", "r", "p"}).AddRow(0, 0, 0, 0, 1, 0))
	mock.ExpectExec("UPDATE users SET safety_score").
		WithArgs(125, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectQuery("WHERE r.id").
		WillReturnRows(reportRows(reportFixture{id: "new", lat: 40.7580, lng: -73.9855}))

	body := `{"title":"Dark corner","description":"The streetlights have been out all week",
		"category":"UNSAFE_CONDITION","location":"5th Ave","latitude":40.758,"longitude":-73.9855}`
	w := serve(CreateReport, request(http.MethodPost, "/reports", body, nil, &alice))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var report model.Report
	decode(t, w, &report)
	assert.Equal(t, model.ReportPending, report.Status)
	assert.Equal(t, 0, report.Upvotes)
}

func TestUpdateReport_VerifyRequiresModerator(t *testing.T) {
	expert := alice
	expert.Role = model.RoleExpert

	for _, u := range []model.UserProfile{alice, expert} {
		for _, action := range []string{"verify", "dismiss"} {
			w := serve(UpdateReport, request(http.MethodPatch, "/reports/r1", `{"action":"`+action+`"}`,
				map[string]string{"id": "r1"}, &u))
			assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", u.Role, action)
		}
	}
}

func TestUpdateReport_VerifyUnknownReport(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE reports SET status").
		WithArgs(model.ReportVerified, true, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	w := serve(UpdateReport, request(http.MethodPatch, "/reports/missing", `{"action":"verify"}`,
		map[string]string{"id": "missing"}, &mod))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReport_Dismiss(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE reports SET status").
		WithArgs(model.ReportDismissed, false, "r1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("WHERE r.id").WillReturnRows(reportRows(reportFixture{id: "r1"}))

	w := serve(UpdateReport, request(http.MethodPatch, "/reports/r1", `{"action":"dismiss"}`,
		map[string]string{"id": "r1"}, &admin))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVoteReport(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT upvotes, downvotes FROM reports").
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(0, 0))
	mock.ExpectQuery("SELECT kind FROM votes").WillReturnRows(pgxmock.NewRows([]string{"kind"}))
	mock.ExpectExec("INSERT INTO votes").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("UPDATE reports").
		WithArgs(0, 1, "r1").
		WillReturnRows(pgxmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(0, 1))
	mock.ExpectCommit()

	w := serve(VoteReport, request(http.MethodPost, "/reports/vote",
		`{"reportId":"r1","voteType":"downvote"}`, nil, &alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res model.ReportVoteResult
	decode(t, w, &res)
	assert.Equal(t, 1, res.Downvotes)
	assert.True(t, res.Downvoted)
	assert.False(t, res.Upvoted)
}

func TestVoteReport_InvalidType(t *testing.T) {
	w := serve(VoteReport, request(http.MethodPost, "/reports/vote",
		`{"reportId":"r1","voteType":"sideways"}`, nil, &alice))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadReportMedia_NotConfigured(t *testing.T) {
	prev := Media
	Media = nil
	t.Cleanup(func() { Media = prev })

	w := serve(UploadReportMedia, request(http.MethodPost, "/reports/r1/media", "",
		map[string]string{"id": "r1"}, &alice))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
