package transactions

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
		&models.Transaction{},
		&models.Budget{},
	))

	utils.DB = db
	utils.JwtSecret = []byte("test-secret")
}

func newRouter() *gin.Engine {
	r := gin.New()
	dashboard := r.Group("/dashboard")
	dashboard.Use(auth.AuthMiddleware())
	dashboard.GET("/transactions", GetTransactions)
	dashboard.POST("/transactions", CreateTransaction)
	dashboard.PUT("/transactions/:id", UpdateTransaction)
	dashboard.DELETE("/transactions/:id", DeleteTransaction)
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

func TestCreateAndListTransactions(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	_, token := newUserWithToken(t, "alice@example.com")

	w := doRequest(r, http.MethodPost, "/dashboard/transactions", token, map[string]interface{}{
		"type":        "expense",
		"category":    "Food",
		"amount":      12.5,
		"date":        "2026-08-01",
		"description": "Lunch",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/dashboard/transactions", token, map[string]interface{}{
		"type":     "income",
		"category": "Salary",
		"amount":   3000.0,
		"date":     "2026-08-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodGet, "/dashboard/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "Salary", body.Transactions[0].Category, "expected newest first")
}

func TestListTransactionsFilters(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")

	seed := []models.Transaction{
		{UserID: user.ID, Type: "expense", Category: "Food", Amount: 10, Date: mustDate(t, "2026-07-01")},
		{UserID: user.ID, Type: "expense", Category: "Transport", Amount: 20, Date: mustDate(t, "2026-07-15")},
		{UserID: user.ID, Type: "income", Category: "Salary", Amount: 3000, Date: mustDate(t, "2026-07-31")},
	}
	require.NoError(t, utils.DB.Create(&seed).Error)

	cases := []struct {
		query string
		want  int
	}{
		{"type=expense", 2},
		{"category=Food", 1},
		{"start_date=2026-07-10", 2},
		{"end_date=2026-07-10", 1},
		{"start_date=2026-07-10&end_date=2026-07-20", 1},
	}

	for _, tc := range cases {
		w := doRequest(r, http.MethodGet, "/dashboard/transactions?"+tc.query, token, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.query)

		var body struct {
			Transactions []models.Transaction `json:"transactions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Transactions, tc.want, tc.query)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	_, token := newUserWithToken(t, "alice@example.com")

	w := doRequest(r, http.MethodPost, "/dashboard/transactions", token, map[string]interface{}{
		"type":     "transfer",
		"category": "",
		"amount":   -5,
		"date":     "01/08/2026",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "type")
	assert.Contains(t, body.Fields, "category")
	assert.Contains(t, body.Fields, "amount")
	assert.Contains(t, body.Fields, "date")
}

func TestCreateTransactionRejectsForeignBudget(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	_, token := newUserWithToken(t, "alice@example.com")
	other, _ := newUserWithToken(t, "mallory@example.com")

	foreign := models.Budget{UserID: other.ID, Category: "Food", Amount: 100, StartDate: mustDate(t, "2026-08-01"), EndDate: mustDate(t, "2026-08-31")}
	require.NoError(t, utils.DB.Create(&foreign).Error)

	w := doRequest(r, http.MethodPost, "/dashboard/transactions", token, map[string]interface{}{
		"type":      "expense",
		"category":  "Food",
		"amount":    10.0,
		"date":      "2026-08-05",
		"budget_id": foreign.ID,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTransaction(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")

	txn := models.Transaction{UserID: user.ID, Type: "expense", Category: "Food", Amount: 10, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&txn).Error)

	w := doRequest(r, http.MethodPut, fmt.Sprintf("/dashboard/transactions/%d", txn.ID), token, map[string]interface{}{
		"type":     "expense",
		"category": "Groceries",
		"amount":   15.0,
		"date":     "2026-08-02",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Transaction
	require.NoError(t, utils.DB.First(&updated, txn.ID).Error)
	assert.Equal(t, "Groceries", updated.Category)
	assert.Equal(t, 15.0, updated.Amount)
}

func TestTransactionOwnershipIsNotLeaked(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	owner, _ := newUserWithToken(t, "alice@example.com")
	_, intruderToken := newUserWithToken(t, "mallory@example.com")

	txn := models.Transaction{UserID: owner.ID, Type: "expense", Category: "Food", Amount: 10, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&txn).Error)

	update := doRequest(r, http.MethodPut, fmt.Sprintf("/dashboard/transactions/%d", txn.ID), intruderToken, map[string]interface{}{
		"type": "expense", "category": "X", "amount": 1.0, "date": "2026-08-01",
	})
	assert.Equal(t, http.StatusNotFound, update.Code)

	del := doRequest(r, http.MethodDelete, fmt.Sprintf("/dashboard/transactions/%d", txn.ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, del.Code)

	var count int64
	utils.DB.Model(&models.Transaction{}).Where("id = ?", txn.ID).Count(&count)
	assert.EqualValues(t, 1, count, "foreign delete must not remove the row")
}

func TestDeleteTransaction(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	user, token := newUserWithToken(t, "alice@example.com")

	txn := models.Transaction{UserID: user.ID, Type: "expense", Category: "Food", Amount: 10, Date: mustDate(t, "2026-08-01")}
	require.NoError(t, utils.DB.Create(&txn).Error)

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/dashboard/transactions/%d", txn.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	utils.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(utils.DateLayout, value)
	require.NoError(t, err)
	return parsed
}
