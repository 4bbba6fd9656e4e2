package transactions

import (
	"net/http"
	"strconv"

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

type transactionInput struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	BudgetID    *uint   `json:"budget_id"`
}

func (in *transactionInput) validate() utils.FieldErrors {
	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "type", in.Type)
	if in.Type != "" {
		utils.RequireOneOf(fieldErrors, "type", in.Type, models.TransactionTypeIncome, models.TransactionTypeExpense)
	}
	utils.Require(fieldErrors, "category", in.Category)
	utils.RequirePositive(fieldErrors, "amount", in.Amount)
	utils.RequireDate(fieldErrors, "date", in.Date)
	return fieldErrors
}

// GetTransactions lists the caller's transactions, newest first. Supports
// type, category, budget_id, start_date and end_date query filters.
func GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	query := utils.DB.Where("user_id = ?", user.ID)

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if budgetID := c.Query("budget_id"); budgetID != "" {
		query = query.Where("budget_id = ?", budgetID)
	}

	fieldErrors := utils.FieldErrors{}
	if start := utils.OptionalDate(fieldErrors, "start_date", c.Query("start_date")); start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end := utils.OptionalDate(fieldErrors, "end_date", c.Query("end_date")); end != nil {
		query = query.Where("date <= ?", *end)
	}
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	var txns []models.Transaction
	if err := query.Order("date DESC, id DESC").Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// CreateTransaction records a new income or expense row for the caller
func CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input transactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	if input.BudgetID != nil {
		var budget models.Budget
		if err := utils.DB.Where("id = ? AND user_id = ?", *input.BudgetID, user.ID).First(&budget).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
	}

	date, _ := utils.ParseDate(input.Date)

	txn := models.Transaction{
		UserID:      user.ID,
		BudgetID:    input.BudgetID,
		Type:        input.Type,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
	}

	if err := utils.DB.Create(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// UpdateTransaction replaces the fields of one of the caller's transactions
func UpdateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var txn models.Transaction
	if err := utils.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&txn).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	var input transactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	if input.BudgetID != nil {
		var budget models.Budget
		if err := utils.DB.Where("id = ? AND user_id = ?", *input.BudgetID, user.ID).First(&budget).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
	}

	date, _ := utils.ParseDate(input.Date)

	txn.Type = input.Type
	txn.Category = input.Category
	txn.Amount = input.Amount
	txn.Date = date
	txn.Description = input.Description
	txn.BudgetID = input.BudgetID

	if err := utils.DB.Save(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// DeleteTransaction removes one of the caller's transactions
func DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var txn models.Transaction
	if err := utils.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&txn).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if err := utils.DB.Delete(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted."})
}
