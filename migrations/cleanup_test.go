package migrations

import (
	"path/filepath"
	"testing"
	"time"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClearOrphanedBudgetLinks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance-test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Budget{}, &models.Transaction{}))
	utils.DB = db

	budget := models.Budget{UserID: 1, Category: "Food", Amount: 100, StartDate: time.Now(), EndDate: time.Now()}
	require.NoError(t, db.Create(&budget).Error)

	liveID := budget.ID
	goneID := budget.ID + 100
	linked := models.Transaction{UserID: 1, BudgetID: &liveID, Type: "expense", Category: "Food", Amount: 5, Date: time.Now()}
	orphan := models.Transaction{UserID: 1, BudgetID: &goneID, Type: "expense", Category: "Food", Amount: 5, Date: time.Now()}
	require.NoError(t, db.Create(&linked).Error)
	require.NoError(t, db.Create(&orphan).Error)

	ClearOrphanedBudgetLinks()

	var cleared models.Transaction
	require.NoError(t, db.First(&cleared, orphan.ID).Error)
	assert.Nil(t, cleared.BudgetID, "dangling link must be cleared")

	var kept models.Transaction
	require.NoError(t, db.First(&kept, linked.ID).Error)
	assert.NotNil(t, kept.BudgetID, "valid link must survive")
}
