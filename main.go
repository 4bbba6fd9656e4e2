package main

import (
	"log"
	"os"
	"strings"
	"time"

	"finance-tracker-server/handlers/auth"
	"finance-tracker-server/handlers/budgets"
	"finance-tracker-server/handlers/categories"
	"finance-tracker-server/handlers/goals"
	"finance-tracker-server/handlers/reports"
	"finance-tracker-server/handlers/transactions"
	"finance-tracker-server/handlers/users"
	"finance-tracker-server/migrations"
	"finance-tracker-server/models"
	"finance-tracker-server/seed"
	"finance-tracker-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	utils.LoadJWTSecret()

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	utils.DB.AutoMigrate(&models.User{})
	utils.DB.AutoMigrate(&models.Transaction{})
	utils.DB.AutoMigrate(&models.Budget{})
	utils.DB.AutoMigrate(&models.SavingsGoal{})
	utils.DB.AutoMigrate(&models.SavingsContribution{})
	migrations.MigratePasswordResets()
	migrations.MigrateCategories()
	migrations.ClearOrphanedBudgetLinks()

	if err := seed.SeedCategories(); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.POST("/forgot-password", auth.ForgotPassword)
	r.POST("/reset-password", auth.ResetPassword)
	r.POST("/auth/google", auth.GoogleAuth)
	r.POST("/auth/google/login", auth.GoogleLogin)
	r.POST("/auth/refresh", auth.RefreshToken)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/logout", auth.Logout)
		protected.GET("/profile", users.GetProfile)
		protected.PUT("/user/currency", users.UpdateCurrency)
		protected.PUT("/user/:id", users.UpdateUser)
		protected.POST("/user/change-password", auth.ChangePassword)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/transactions", transactions.GetTransactions)
			dashboard.POST("/transactions", transactions.CreateTransaction)
			dashboard.PUT("/transactions/:id", transactions.UpdateTransaction)
			dashboard.DELETE("/transactions/:id", transactions.DeleteTransaction)

			dashboard.GET("/budgets", budgets.GetBudgets)
			dashboard.POST("/budgets", budgets.CreateBudget)
			dashboard.GET("/budgets/:id", budgets.GetBudget)
			dashboard.PUT("/budgets/:id", budgets.UpdateBudget)
			dashboard.DELETE("/budgets/:id", budgets.DeleteBudget)
			dashboard.POST("/budgets/:id/add-expense", budgets.AddExpense)

			dashboard.GET("/savings-goals", goals.GetGoals)
			dashboard.POST("/savings-goals", goals.CreateGoal)
			dashboard.GET("/savings-goals/:id", goals.GetGoal)
			dashboard.PUT("/savings-goals/:id", goals.UpdateGoal)
			dashboard.DELETE("/savings-goals/:id", goals.DeleteGoal)
			dashboard.POST("/goals/:id/add-contribution", goals.AddContribution)
			dashboard.PUT("/contributions/:id", goals.UpdateContribution)
			dashboard.DELETE("/contributions/:id", goals.DeleteContribution)

			dashboard.GET("/reports", reports.GetReport)
			categories.RegisterCategoriesRoutes(dashboard)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
