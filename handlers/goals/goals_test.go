package goals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finance-tracker-server/handlers/auth"
	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance-test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SavingsGoal{},
		&models.SavingsContribution{},
	))

	utils.DB = db
	utils.JwtSecret = []byte("test-secret")
}

func newRouter() *gin.Engine {
	r := gin.New()
	dashboard := r.Group("/dashboard")
	dashboard.Use(auth.AuthMiddleware())
	dashboard.GET("/savings-goals", GetGoals)
	dashboard.POST("/savings-goals", CreateGoal)
	dashboard.GET("/savings-goals/:id", GetGoal)
	dashboard.PUT("/savings-goals/:id", UpdateGoal)
	dashboard.DELETE("/savings-goals/:id", DeleteGoal)
	dashboard.POST("/goals/:id/add-contribution", AddContribution)
	dashboard.PUT("/contributions/:id", UpdateContribution)
	dashboard.DELETE("/contributions/:id", DeleteContribution)
	return r
}

func newUserWithToken(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "irrelevant-hash"}
	require.NoError(t, utils.DB.Create(&user).Error)

	token, err := utils.GenerateAccessToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createGoal(t *testing.T, userID uint, title string, target float64) models.SavingsGoal {
	t.Helper()

	goal := models.SavingsGoal{
		UserID:       userID,
		Title:        title,
		TargetAmount: target,
		Deadline:     mustDate(t, "2027-01-01"),
	}
	require.NoError(t, utils.DB.Create(&goal).Error)
	return goal
}

func TestCreateGoalValidation(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	_, token := newUserWithToken(t, "alice@example.com")

	w := doRequest(r, http.MethodPost, "/dashboard/savings-goals", token, map[string]interface{}{
		"title":         "",
		"target_amount": 0,
		"deadline":      "soon",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "title")
	assert.Contains(t, body.Fields, "target_amount")
	assert.Contains(t, body.Fields, "deadline")
}

func TestAddContributionAndProgress(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")
	goal := createGoal(t, user.ID, "Holiday", 1000)

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/dashboard/goals/%d/add-contribution", goal.ID), token, map[string]interface{}{
		"amount": 250.0,
		"date":   "2026-08-10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/dashboard/savings-goals/%d", goal.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SavingsGoal struct {
			Saved         float64       `json:"saved"`
			Progress      float64       `json:"progress"`
			Contributions []interface{} `json:"contributions"`
		} `json:"savings_goal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 250.0, body.SavingsGoal.Saved)
	assert.Equal(t, 25.0, body.SavingsGoal.Progress)
	assert.Len(t, body.SavingsGoal.Contributions, 1)
}

func TestDeleteGoalCascadesContributions(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")
	goal := createGoal(t, user.ID, "Holiday", 1000)

	seed := []models.SavingsContribution{
		{GoalID: goal.ID, Amount: 100, Date: mustDate(t, "2026-08-01")},
		{GoalID: goal.ID, Amount: 200, Date: mustDate(t, "2026-08-02")},
	}
	require.NoError(t, utils.DB.Create(&seed).Error)

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/dashboard/savings-goals/%d", goal.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	utils.DB.Model(&models.SavingsContribution{}).Where("goal_id = ?", goal.ID).Count(&count)
	assert.EqualValues(t, 0, count, "contributions must be deleted with their goal")
}

func TestContributionOwnershipResolvedThroughGoal(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	owner, _ := newUserWithToken(t, "alice@example.com")
	_, intruderToken := newUserWithToken(t, "mallory@example.com")
	goal := createGoal(t, owner.ID, "Holiday", 1000)

	contribution := models.SavingsContribution{GoalID: goal.ID, Amount: 100, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&contribution).Error)

	addToForeignGoal := doRequest(r, http.MethodPost, fmt.Sprintf("/dashboard/goals/%d/add-contribution", goal.ID), intruderToken, map[string]interface{}{"amount": 10.0})
	assert.Equal(t, http.StatusNotFound, addToForeignGoal.Code)

	update := doRequest(r, http.MethodPut, fmt.Sprintf("/dashboard/contributions/%d", contribution.ID), intruderToken, map[string]interface{}{
		"amount": 1.0, "date": "2026-08-01",
	})
	assert.Equal(t, http.StatusNotFound, update.Code)

	del := doRequest(r, http.MethodDelete, fmt.Sprintf("/dashboard/contributions/%d", contribution.ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, del.Code)
}

func TestUpdateAndDeleteContribution(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")
	goal := createGoal(t, user.ID, "Holiday", 1000)

	contribution := models.SavingsContribution{GoalID: goal.ID, Amount: 100, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&contribution).Error)

	w := doRequest(r, http.MethodPut, fmt.Sprintf("/dashboard/contributions/%d", contribution.ID), token, map[string]interface{}{
		"amount": 150.0,
		"date":   "2026-08-05",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.SavingsContribution
	require.NoError(t, utils.DB.First(&updated, contribution.ID).Error)
	assert.Equal(t, 150.0, updated.Amount)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/dashboard/contributions/%d", contribution.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	utils.DB.Model(&models.SavingsContribution{}).Where("goal_id = ?", goal.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGoalProgressCapsAtHundred(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")
	goal := createGoal(t, user.ID, "Holiday", 100)

	contribution := models.SavingsContribution{GoalID: goal.ID, Amount: 250, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&contribution).Error)

	w := doRequest(r, http.MethodGet, "/dashboard/savings-goals", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SavingsGoals []struct {
			Progress float64 `json:"progress"`
		} `json:"savings_goals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.SavingsGoals, 1)
	assert.Equal(t, 100.0, body.SavingsGoals[0].Progress)
}

func TestGetGoalReportsSavedFailure(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")
	goal := createGoal(t, user.ID, "Vacation", 1000)

	// Break the saved aggregation so the handler cannot silently report 0.
	require.NoError(t, utils.DB.Exec("DROP TABLE savings_contributions").Error)

	w := doRequest(r, http.MethodGet, fmt.Sprintf("/dashboard/savings-goals/%d", goal.ID), token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	list := doRequest(r, http.MethodGet, "/dashboard/savings-goals", token, nil)
	assert.Equal(t, http.StatusInternalServerError, list.Code)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(utils.DateLayout, value)
	require.NoError(t, err)
	return parsed
}
