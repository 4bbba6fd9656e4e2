package reports

import (
	"net/http"
	"time"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return models.User{}, false
	}
	return userInterface.(models.User), true
}

// GetReport builds a derived report over the caller's data. Nothing is
// persisted. report_type selects the shape; the range defaults to the
// current month.
func GetReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reportType := c.DefaultQuery("report_type", "summary")

	fieldErrors := utils.FieldErrors{}
	utils.RequireOneOf(fieldErrors, "report_type", reportType, "summary", "category", "budget", "goal")

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now
	if parsed := utils.OptionalDate(fieldErrors, "start_date", c.Query("start_date")); parsed != nil {
		start = *parsed
	}
	if parsed := utils.OptionalDate(fieldErrors, "end_date", c.Query("end_date")); parsed != nil {
		end = *parsed
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	var data interface{}
	var err error

	switch reportType {
	case "summary":
		data, err = summaryReport(user.ID, start, end)
	case "category":
		data, err = categoryReport(user.ID, start, end)
	case "budget":
		data, err = budgetReport(user.ID)
	case "goal":
		data, err = goalReport(user.ID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report_type": reportType,
		"start_date":  start.Format(utils.DateLayout),
		"end_date":    end.Format(utils.DateLayout),
		"data":        data,
	})
}

func sumTransactions(userID uint, txnType string, start, end time.Time) (float64, error) {
	var total float64
	err := utils.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, txnType, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func summaryReport(userID uint, start, end time.Time) (gin.H, error) {
	income, err := sumTransactions(userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := sumTransactions(userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"income":  income,
		"expense": expense,
		"net":     income - expense,
	}, nil
}

func categoryReport(userID uint, start, end time.Time) ([]gin.H, error) {
	var rows []struct {
		Category string
		Type     string
		Total    float64
	}
	err := utils.DB.Model(&models.Transaction{}).
		Select("category, type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category, type").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	payload := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, gin.H{
			"category": row.Category,
			"type":     row.Type,
			"total":    row.Total,
		})
	}
	return payload, nil
}

func budgetReport(userID uint) ([]gin.H, error) {
	var budgets []models.Budget
	if err := utils.DB.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, err
	}

	payload := make([]gin.H, 0, len(budgets))
	for _, budget := range budgets {
		var spent float64
		err := utils.DB.Model(&models.Transaction{}).
			Where("budget_id = ? AND type = ?", budget.ID, models.TransactionTypeExpense).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&spent).Error
		if err != nil {
			return nil, err
		}
		payload = append(payload, gin.H{
			"id":        budget.ID,
			"category":  budget.Category,
			"amount":    budget.Amount,
			"spent":     spent,
			"remaining": budget.Amount - spent,
		})
	}
	return payload, nil
}

func goalReport(userID uint) ([]gin.H, error) {
	var goals []models.SavingsGoal
	if err := utils.DB.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, err
	}

	payload := make([]gin.H, 0, len(goals))
	for _, goal := range goals {
		var saved float64
		err := utils.DB.Model(&models.SavingsContribution{}).
			Where("goal_id = ?", goal.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&saved).Error
		if err != nil {
			return nil, err
		}
		payload = append(payload, gin.H{
			"id":            goal.ID,
			"title":         goal.Title,
			"target_amount": goal.TargetAmount,
			"saved":         saved,
			"deadline":      goal.Deadline.Format(utils.DateLayout),
		})
	}
	return payload, nil
}
