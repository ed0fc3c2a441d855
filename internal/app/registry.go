package app

import (
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	"github.com/VonnAirone/leave-management-system/internal/auth"
	"github.com/VonnAirone/leave-management-system/internal/cosworker"
	"github.com/VonnAirone/leave-management-system/internal/credit"
	"github.com/VonnAirone/leave-management-system/internal/document"
	"github.com/VonnAirone/leave-management-system/internal/leave"
	"github.com/VonnAirone/leave-management-system/internal/leavetype"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/profile"
	"github.com/VonnAirone/leave-management-system/internal/rbac"
	"github.com/VonnAirone/leave-management-system/internal/refdata"
	"github.com/VonnAirone/leave-management-system/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(engine *gin.Engine, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) error {
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}

	// Repositories
	auditRepo := auditlog.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	counterRepo := counter.NewRepository(db)
	authRepo := auth.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	workerRepo := cosworker.NewRepository(db)
	refDataRepo := refdata.NewRepository(db)

	// Services. Reference data comes first: registrations, profile edits and
	// worker imports resolve their free-text office/position against it.
	refDataService := refdata.NewService(refDataRepo, rdb, logger)
	auditService := auditlog.NewService(auditRepo, logger)
	authService := auth.NewService(db, authRepo, profileRepo, auditRepo, outboxRepo, refDataService, logger)
	profileService := profile.NewService(db, profileRepo, auditRepo, outboxRepo, refDataService, logger)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb, logger)
	creditService := credit.NewService(db, creditRepo, auditRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, creditRepo, auditRepo, counterRepo, outboxRepo, logger)
	workerService := cosworker.NewService(db, workerRepo, auditRepo, refDataService, logger)
	documentService, err := document.NewService(leaveService, logger)
	if err != nil {
		return err
	}

	// 5 req/s with a burst of 10 per IP on login
	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(5), 10)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	auth.RegisterRoutes(api, auth.NewHandler(authService, logger), rbacService, loginLimiter)
	profile.RegisterRoutes(api, profile.NewHandler(profileService, logger), rbacService)
	leavetype.RegisterRoutes(api, leavetype.NewHandler(leaveTypeService))
	credit.RegisterRoutes(api, credit.NewHandler(creditService, logger), rbacService)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService, logger), rbacService)
	cosworker.RegisterRoutes(api, cosworker.NewHandler(workerService, logger), rbacService)
	auditlog.RegisterRoutes(api, auditlog.NewHandler(auditService, logger), rbacService)
	refdata.RegisterRoutes(api, refdata.NewHandler(refDataService, logger))
	document.RegisterRoutes(api, document.NewHandler(documentService, logger), rbacService)

	return nil
}
