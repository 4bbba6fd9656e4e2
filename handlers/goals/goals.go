package goals

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

type goalInput struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
	Description  string  `json:"description"`
}

func (in *goalInput) validate() (utils.FieldErrors, time.Time) {
	fieldErrors := utils.FieldErrors{}
	utils.Require(fieldErrors, "title", in.Title)
	utils.RequirePositive(fieldErrors, "target_amount", in.TargetAmount)
	deadline := utils.RequireDate(fieldErrors, "deadline", in.Deadline)
	return fieldErrors, deadline
}

// savedAmount sums the contributions recorded against a goal.
func savedAmount(goalID uint) (float64, error) {
	var saved float64
	err := utils.DB.Model(&models.SavingsContribution{}).
		Where("goal_id = ?", goalID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&saved).Error
	return saved, err
}

func goalPayload(goal models.SavingsGoal) (gin.H, error) {
	saved, err := savedAmount(goal.ID)
	if err != nil {
		return nil, err
	}
	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = saved / goal.TargetAmount * 100
		if progress > 100 {
			progress = 100
		}
	}
	return gin.H{
		"id":            goal.ID,
		"title":         goal.Title,
		"target_amount": goal.TargetAmount,
		"deadline":      goal.Deadline.Format(utils.DateLayout),
		"description":   goal.Description,
		"saved":         saved,
		"progress":      progress,
	}, nil
}

// GetGoals lists the caller's savings goals with progress
func GetGoals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var goals []models.SavingsGoal
	if err := utils.DB.Where("user_id = ?", user.ID).Order("deadline ASC, id DESC").Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch savings goals"})
		return
	}

	payload := make([]gin.H, 0, len(goals))
	for _, goal := range goals {
		item, err := goalPayload(goal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch savings goals"})
			return
		}
		payload = append(payload, item)
	}

	c.JSON(http.StatusOK, gin.H{"savings_goals": payload})
}

// GetGoal returns one of the caller's savings goals with its contributions
func GetGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goal, ok := findGoal(c, user.ID)
	if !ok {
		return
	}

	var contributions []models.SavingsContribution
	if err := utils.DB.Where("goal_id = ?", goal.ID).Order("date DESC, id DESC").Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	payload, err := goalPayload(goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch savings goal"})
		return
	}
	payload["contributions"] = contributions

	c.JSON(http.StatusOK, gin.H{"savings_goal": payload})
}

// CreateGoal adds a savings goal for the caller
func CreateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input goalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors, deadline := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	goal := models.SavingsGoal{
		UserID:       user.ID,
		Title:        input.Title,
		TargetAmount: input.TargetAmount,
		Deadline:     deadline,
		Description:  input.Description,
	}

	if err := utils.DB.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create savings goal"})
		return
	}

	payload, err := goalPayload(goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch savings goal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"savings_goal": payload})
}

// UpdateGoal replaces the fields of one of the caller's savings goals
func UpdateGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goal, ok := findGoal(c, user.ID)
	if !ok {
		return
	}

	var input goalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors, deadline := input.validate()
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	goal.Title = input.Title
	goal.TargetAmount = input.TargetAmount
	goal.Deadline = deadline
	goal.Description = input.Description

	if err := utils.DB.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update savings goal"})
		return
	}

	payload, err := goalPayload(goal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch savings goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings_goal": payload})
}

// DeleteGoal removes a savings goal along with its contributions
func DeleteGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goal, ok := findGoal(c, user.ID)
	if !ok {
		return
	}

	if err := utils.DB.Where("goal_id = ?", goal.ID).Delete(&models.SavingsContribution{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete savings goal"})
		return
	}

	if err := utils.DB.Delete(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete savings goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Savings goal deleted."})
}

// AddContribution records a contribution towards one of the caller's goals
func AddContribution(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goal, ok := findGoal(c, user.ID)
	if !ok {
		return
	}

	var input struct {
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
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

	contribution := models.SavingsContribution{
		GoalID: goal.ID,
		Amount: input.Amount,
		Date:   date,
	}

	if err := utils.DB.Create(&contribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contribution"})
		return
	}

	saved, err := savedAmount(goal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contribution"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contribution": contribution, "saved": saved})
}

// UpdateContribution changes the amount or date of a contribution
func UpdateContribution(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	contribution, ok := findContribution(c, user.ID)
	if !ok {
		return
	}

	var input struct {
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	fieldErrors := utils.FieldErrors{}
	utils.RequirePositive(fieldErrors, "amount", input.Amount)
	date := utils.RequireDate(fieldErrors, "date", input.Date)
	if !fieldErrors.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed. Please check the highlighted fields.", "fields": fieldErrors})
		return
	}

	contribution.Amount = input.Amount
	contribution.Date = date

	if err := utils.DB.Save(&contribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contribution": contribution})
}

// DeleteContribution removes a contribution from one of the caller's goals
func DeleteContribution(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	contribution, ok := findContribution(c, user.ID)
	if !ok {
		return
	}

	if err := utils.DB.Delete(&contribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contribution deleted."})
}

// findGoal loads the goal named by the :id path parameter, scoped to the
// owner. Writes the error response on failure.
func findGoal(c *gin.Context, userID uint) (models.SavingsGoal, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid savings goal ID"})
		return models.SavingsGoal{}, false
	}

	var goal models.SavingsGoal
	if err := utils.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Savings goal not found"})
		return models.SavingsGoal{}, false
	}

	return goal, true
}

// findContribution resolves ownership through the contribution's goal.
func findContribution(c *gin.Context, userID uint) (models.SavingsContribution, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contribution ID"})
		return models.SavingsContribution{}, false
	}

	var contribution models.SavingsContribution
	if err := utils.DB.Where("id = ?", id).First(&contribution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contribution not found"})
		return models.SavingsContribution{}, false
	}

	var goal models.SavingsGoal
	if err := utils.DB.Where("id = ? AND user_id = ?", contribution.GoalID, userID).First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contribution not found"})
		return models.SavingsContribution{}, false
	}

	return contribution, true
}
