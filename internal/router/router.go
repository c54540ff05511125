package router

import (
	"net/http"

	"github.com/damia-cpu/Wellness-Cafe/internal/config"
	"github.com/damia-cpu/Wellness-Cafe/internal/handler"
	"github.com/damia-cpu/Wellness-Cafe/internal/middleware"
	"github.com/damia-cpu/Wellness-Cafe/internal/pos"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is everything the routes need, built once in main.
type Deps struct {
	Config *config.Config
	Store  *store.Store
	Cart   *pos.Cart
	Cipher *util.Cipher
	Clock  util.Clock
	Log    zerolog.Logger
}

// SetupRouter wires the JSON API.
func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), middleware.Recovery(d.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loc := cfg.Location()
	db := d.Store.DB()

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(cfg.Auth, cfg.TokenTTL(), d.Clock)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.AuditMiddleware(db, d.Cipher, d.Log),
	)

	protected.GET("/me", handler.GetMe(cfg.Business))
	protected.POST("/auth/password", authHandler.ChangePassword)

	menuHandler := handler.NewMenuHandler(d.Store, d.Clock)
	protected.GET("/menu", menuHandler.ListMenu)
	protected.POST("/menu", menuHandler.CreateMenuItem)
	protected.PATCH("/menu/:id", menuHandler.UpdateMenuItem)
	protected.DELETE("/menu/:id", menuHandler.DeleteMenuItem)
	protected.GET("/addons", menuHandler.ListAddOns)
	protected.PATCH("/addons/:id", menuHandler.UpdateAddOn)

	orderHandler := handler.NewOrderHandler(d.Store, d.Cart, d.Clock, loc)
	protected.GET("/cart", orderHandler.GetCart)
	protected.DELETE("/cart", orderHandler.ClearCart)
	protected.POST("/cart/items", orderHandler.AddItem)
	protected.DELETE("/cart/items/:line", orderHandler.RemoveItem)
	protected.POST("/cart/checkout", orderHandler.Checkout)
	protected.POST("/sales/manual", orderHandler.ManualSale)

	ledgerHandler := handler.NewLedgerHandler(d.Store, d.Clock, loc)
	protected.GET("/transactions", ledgerHandler.ListTransactions)
	protected.DELETE("/transactions/:id", ledgerHandler.DeleteTransaction)
	protected.GET("/expenses", ledgerHandler.ListExpenses)
	protected.POST("/expenses", ledgerHandler.CreateExpense)
	protected.DELETE("/expenses/:id", ledgerHandler.DeleteExpense)

	reportHandler := handler.NewReportHandler(d.Store, d.Clock, loc)
	protected.GET("/reports/profit-loss", reportHandler.ProfitLoss)
	protected.GET("/reports/financial-position", reportHandler.FinancialPosition)
	protected.GET("/reports/period", reportHandler.Period)
	protected.GET("/dashboard", reportHandler.Dashboard)

	exportHandler := handler.NewExportHandler(d.Store, d.Clock, loc)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(d.Store, d.Cipher, cfg.Backup.Dir, d.Clock)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, d.Cipher, loc)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
