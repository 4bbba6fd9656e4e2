package budgets

import (
	"net/http"
	"strconv"
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

type budgetInput struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description string  `json:"description"`
}

func (in *budgetInput) validate() (utils.FieldErrors, time.Time, time.Time) {
	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "category", in.Category)
	utils.RequirePositive(fieldErrors, "amount", in.Amount)
	start := utils.RequireDate(fieldErrors, "start_date", in.StartDate)
	end := utils.RequireDate(fieldErrors, "end_date", in.EndDate)
	if fieldErrors.OK() && end.Before(start) {
		fieldErrors.Add("end_date", "Must not be earlier than start_date.")
	}
	return fieldErrors, start, end
}

// spentAmount sums the expense transactions linked to a budget.
func spentAmount(budgetID uint) (float64, error) {
	var spent float64
	err := utils.DB.Model(&models.Transaction{}).
		Where("budget_id = ? AND type = ?", budgetID, models.TransactionTypeExpense).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error
	return spent, err
}

func budgetPayload(budget models.Budget) (gin.H, error) {
	spent, err := spentAmount(budget.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"id":          budget.ID,
		"category":    budget.Category,
		"amount":      budget.Amount,
		"start_date":  budget.StartDate.Format(utils.DateLayout),
		"end_date":    budget.EndDate.Format(utils.DateLayout),
		"description": budget.Description,
		"spent":       spent,
	}, nil
}

// GetBudgets lists the caller's budgets with their spent totals
func GetBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var budgets []models.Budget
	if err := utils.DB.Where("user_id = ?", user.ID).Order("start_date DESC, id DESC").Find(&budgets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
		return
	}

	payload := make([]gin.H, 0, len(budgets))
	for _, budget := range budgets {
		item, err := budgetPayload(budget)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
			return
		}
		payload = append(payload, item)
	}

	c.JSON(http.StatusOK, gin.H{"budgets": payload})
}

// GetBudget returns one of the caller's budgets
func GetBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budget, ok := findBudget(c, user.ID)
	if !ok {
		return
	}

	payload, err := budgetPayload(budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": payload})
}

// CreateBudget adds a spending ceiling for a category and date range
func CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input budgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors, start, end := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	budget := models.Budget{
		UserID:      user.ID,
		Category:    input.Category,
		Amount:      input.Amount,
		StartDate:   start,
		EndDate:     end,
		Description: input.Description,
	}

	if err := utils.DB.Create(&budget).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	payload, err := budgetPayload(budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budget"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": payload})
}

// UpdateBudget replaces the fields of one of the caller's budgets
func UpdateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budget, ok := findBudget(c, user.ID)
	if !ok {
		return
	}

	var input budgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors, start, end := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	budget.Category = input.Category
	budget.Amount = input.Amount
	budget.StartDate = start
	budget.EndDate = end
	budget.Description = input.Description

	if err := utils.DB.Save(&budget).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	payload, err := budgetPayload(budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": payload})
}

// DeleteBudget removes a budget. Linked transactions survive with their
// budget reference cleared.
func DeleteBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budget, ok := findBudget(c, user.ID)
	if !ok {
		return
	}

	if err := utils.DB.Model(&models.Transaction{}).Where("budget_id = ?", budget.ID).Update("budget_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	if err := utils.DB.Delete(&budget).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted."})
}

// AddExpense records an expense transaction linked to the budget. The
// category defaults to the budget's own and the date to today.
func AddExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budget, ok := findBudget(c, user.ID)
	if !ok {
		return
	}

	var input struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Date        string  `json:"date"`
		Description string  `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.RequirePositive(fieldErrors, "amount", input.Amount)
	date := time.Now()
	if parsed := utils.OptionalDate(fieldErrors, "date", input.Date); parsed != nil {
		date = *parsed
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	category := input.Category
	if category == "" {
		category = budget.Category
	}

	budgetID := budget.ID
	txn := models.Transaction{
		UserID:      user.ID,
		BudgetID:    &budgetID,
		Type:        models.TransactionTypeExpense,
		Category:    category,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
	}

	if err := utils.DB.Create(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add expense"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// findBudget loads the budget named by the :id path parameter, scoped to
// the owner. Writes the error response on failure.
func findBudget(c *gin.Context, userID uint) (models.Budget, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget ID"})
		return models.Budget{}, false
	}

	var budget models.Budget
	if err := utils.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return models.Budget{}, false
	}

	return budget, true
}
