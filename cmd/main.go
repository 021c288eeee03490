package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/lawrenceChege/order-management/internal/app"
	"github.com/lawrenceChege/order-management/internal/config"
	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/controllers"
	"github.com/lawrenceChege/order-management/internal/middleware"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/routes"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	stateRepo := repositories.NewStateRepository(application.DB)
	actionTypeRepo := repositories.NewActionTypeRepository(application.DB)
	actionRepo := repositories.NewActionRepository(application.DB)
	customerRepo := repositories.NewCustomerRepository(application.DB)
	productRepo := repositories.NewProductRepository(application.DB)
	categoryRepo := repositories.NewCategoryRepository(application.DB)
	currencyRepo := repositories.NewCurrencyRepository(application.DB)
	orderRepo := repositories.NewOrderRepository(application.DB)
	roleRepo := repositories.NewRoleRepository(application.DB)
	userRepo := repositories.NewEUserRepository(application.DB)

	seedCtx := context.Background()
	if err := app.SeedReferenceData(seedCtx, stateRepo, actionTypeRepo, roleRepo, currencyRepo, categoryRepo); err != nil {
		utils.Logger.Fatal("Failed to seed reference data:", err)
	}
	if err := app.SeedSuperuser(seedCtx, cfg, stateRepo, userRepo); err != nil {
		utils.Logger.Fatal("Failed to seed superuser:", err)
	}

	// Services
	var notifier services.OrderNotifier = services.NoopNotifier{}
	if cfg.NotificationsConfigured() {
		notifier = services.NewNotificationService(
			cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioSMSFrom,
			cfg.SendgridAPIKey, cfg.EmailFrom, cfg.EmailFromName,
		)
	} else {
		utils.Logger.Warn("Notification credentials missing; order notifications disabled")
	}

	actionLogService := services.NewActionLogService(actionRepo, actionTypeRepo, stateRepo, userRepo)
	customerService := services.NewCustomerService(customerRepo, stateRepo, actionLogService)
	productService := services.NewProductService(productRepo, categoryRepo, currencyRepo, stateRepo, actionLogService)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, stateRepo, actionLogService, notifier)
	userService := services.NewEUserService(userRepo, roleRepo, stateRepo, actionLogService, cfg.JWTSecret, cfg.TokenTTL)
	auditService := services.NewAuditService(actionRepo, actionLogService)
	auditSyncService := services.NewAuditSyncService(actionRepo, stateRepo, services.NewLogExporter())

	// Controllers
	healthController := controllers.NewHealthController(application.DB)
	customerController := controllers.NewCustomerController(customerService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)
	userController := controllers.NewUserController(userService)
	auditController := controllers.NewAuditController(auditService)

	// Periodic export of closed audit actions
	if cfg.AuditSyncSchedule != "" {
		c := cron.New()
		_, schErr := c.AddFunc(cfg.AuditSyncSchedule, func() {
			if _, err := auditSyncService.SyncActions(context.Background()); err != nil {
				utils.Logger.WithError(err).Error("Scheduled audit sync failed")
			}
		})
		if schErr != nil {
			utils.Logger.WithError(schErr).Fatal("Failed to schedule audit sync job")
		}
		c.Start()
	}

	// Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UsersLogin, userController.LoginHandler).Methods(http.MethodPost)

	// Protected routes (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	secured.HandleFunc(routes.CustomersBase, customerController.AddCustomerHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.CustomersBase, customerController.EditCustomerHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.CustomersBase, customerController.GetCustomersHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CustomerByID, customerController.GetCustomerHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CustomerByID, customerController.DeleteCustomerHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.ProductsBase, productController.AddProductHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ProductsBase, productController.EditProductHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.ProductsBase, productController.GetProductsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProductByID, productController.GetProductHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProductByID, productController.DeleteProductHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.OrdersBase, orderController.PlaceOrderHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.OrdersBase, orderController.GetOrdersHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OrderByID, orderController.GetOrderHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OrderComplete, orderController.CompleteOrderHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.OrderCancel, orderController.CancelOrderHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.UsersBase, userController.AddUserHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UsersBase, userController.EditUserHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.UsersBase, userController.GetUsersHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UsersDisable, userController.DisableUserHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UsersSetPassword, userController.SetPasswordHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.ActionsBase, auditController.GetAllActionsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ActionByID, auditController.GetActionHandler).Methods(http.MethodGet)

	// CORS config
	allowedOrigins := []string{"*"}
	if cfg.AppUrl != "" {
		allowedOrigins = []string{cfg.AppUrl}
	}
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
