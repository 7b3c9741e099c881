package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/equicrm/equicrm/docs"
	v1 "github.com/equicrm/equicrm/internal/api/handler/v1"
	"github.com/equicrm/equicrm/internal/api/middleware"
	"github.com/equicrm/equicrm/internal/config"
	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
	"github.com/equicrm/equicrm/internal/repository/dao"
	"github.com/equicrm/equicrm/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	authSvc *service.AuthService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.authSvc = service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(db)))

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	horseHandler := s.initHorseHandler(db)
	lessonHandler := s.initLessonHandler(db)
	eventHandler := s.initEventHandler(db)
	equipmentHandler := s.initEquipmentHandler(db)
	paymentHandler := s.initPaymentHandler(db)
	statsHandler := s.initStatsHandler(db)
	s.MountHandlers(authHandler, userHandler, horseHandler, lessonHandler,
		eventHandler, equipmentHandler, paymentHandler, statsHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initHorseHandler(db *gorm.DB) *v1.HorseHandler {
	repo := repository.NewHorseRepository(dao.NewHorseDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewHorseService(repo, userRepo)
	handler := v1.NewHorseHandler(svc)

	return handler
}

func (s *Server) initLessonHandler(db *gorm.DB) *v1.LessonHandler {
	repo := repository.NewLessonRepository(dao.NewLessonDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	horseRepo := repository.NewHorseRepository(dao.NewHorseDAO(db))
	svc := service.NewLessonService(repo, userRepo, horseRepo)
	handler := v1.NewLessonHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initEquipmentHandler(db *gorm.DB) *v1.EquipmentHandler {
	repo := repository.NewEquipmentRepository(dao.NewEquipmentDAO(db))
	horseRepo := repository.NewHorseRepository(dao.NewHorseDAO(db))
	svc := service.NewEquipmentService(repo, horseRepo)
	handler := v1.NewEquipmentHandler(svc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB) *v1.PaymentHandler {
	repo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewPaymentService(repo, userRepo)
	handler := v1.NewPaymentHandler(svc)

	return handler
}

func (s *Server) initStatsHandler(db *gorm.DB) *v1.StatsHandler {
	svc := service.NewStatsService(
		repository.NewUserRepository(dao.NewUserDAO(db)),
		repository.NewHorseRepository(dao.NewHorseDAO(db)),
		repository.NewLessonRepository(dao.NewLessonDAO(db)),
		repository.NewEventRepository(dao.NewEventDAO(db)),
		repository.NewEquipmentRepository(dao.NewEquipmentDAO(db)),
		repository.NewPaymentRepository(dao.NewPaymentDAO(db)),
	)
	handler := v1.NewStatsHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	horseHandler *v1.HorseHandler,
	lessonHandler *v1.LessonHandler,
	eventHandler *v1.EventHandler,
	equipmentHandler *v1.EquipmentHandler,
	paymentHandler *v1.PaymentHandler,
	statsHandler *v1.StatsHandler,
) {
	const basePath = "/api/v1"

	generalLimit := middleware.NewRateLimiter(
		rate.Limit(s.Config.API.RateLimitPerSecond), s.Config.API.RateLimitBurst).Handle()
	authLimit := middleware.NewRateLimiter(
		rate.Limit(s.Config.API.AuthRatePerMinute/60), s.Config.API.AuthRateBurst).Handle()

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.authSvc).VerifyJWT()
	staffOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleTrainer)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	public := s.Router.Group(basePath, generalLimit)
	{
		public.POST("/auth/register", authLimit, authHandler.HandleRegister)
		public.POST("/auth/login", authLimit, authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, generalLimit, verifyJWT)
	{
		authed.GET("/auth/me", authHandler.HandleMe)

		authed.GET("/horses", horseHandler.HandleListHorses)
		authed.GET("/horses/:horseID", horseHandler.HandleGetHorse)

		authed.GET("/equipment", equipmentHandler.HandleListEquipment)
		authed.GET("/equipment/:equipmentID", equipmentHandler.HandleGetEquipment)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.POST("/events/:eventID/register", eventHandler.HandleRegister)
		authed.POST("/events/:eventID/unregister", eventHandler.HandleUnregister)

		// Members see only their own rows, enforced in the handlers.
		authed.GET("/lessons", lessonHandler.HandleListLessons)
		authed.GET("/lessons/:lessonID", lessonHandler.HandleGetLesson)
		authed.GET("/payments", paymentHandler.HandleListPayments)
		authed.GET("/payments/:paymentID", paymentHandler.HandleGetPayment)
	}

	staff := s.Router.Group(basePath, generalLimit, verifyJWT, staffOnly)
	{
		staff.GET("/users", userHandler.HandleListUsers)
		staff.GET("/users/:userID", userHandler.HandleGetUser)

		staff.POST("/horses", horseHandler.HandleCreateHorse)
		staff.PUT("/horses/:horseID", horseHandler.HandleUpdateHorse)
		staff.POST("/horses/:horseID/archive", horseHandler.HandleArchiveHorse)

		staff.POST("/lessons", lessonHandler.HandleScheduleLesson)
		staff.PUT("/lessons/:lessonID", lessonHandler.HandleUpdateLesson)
		staff.POST("/lessons/:lessonID/cancel", lessonHandler.HandleCancelLesson)
		staff.PUT("/lessons/:lessonID/status", lessonHandler.HandleUpdateLessonStatus)

		staff.POST("/events", eventHandler.HandleCreateEvent)
		staff.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		staff.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		staff.PUT("/events/:eventID/payment/:userID", eventHandler.HandleParticipantPayment)

		staff.POST("/equipment", equipmentHandler.HandleCreateEquipment)
		staff.PUT("/equipment/:equipmentID", equipmentHandler.HandleUpdateEquipment)
		staff.POST("/equipment/:equipmentID/archive", equipmentHandler.HandleArchiveEquipment)

		staff.POST("/payments", paymentHandler.HandleCreatePayment)
		staff.PUT("/payments/:paymentID", paymentHandler.HandleUpdatePayment)
		staff.PUT("/payments/:paymentID/status", paymentHandler.HandleUpdatePaymentStatus)
		staff.GET("/payments/stats/summary", paymentHandler.HandlePaymentSummary)

		staff.GET("/stats/dashboard", statsHandler.HandleDashboard)
		staff.GET("/stats/overview", statsHandler.HandleOverview)
	}

	admin := s.Router.Group(basePath, generalLimit, verifyJWT, adminOnly)
	{
		admin.POST("/users", userHandler.HandleCreateUser)
		admin.PUT("/users/:userID", userHandler.HandleUpdateUser)
		admin.PUT("/users/:userID/password", userHandler.HandleChangePassword)
		admin.POST("/users/:userID/archive", userHandler.HandleArchiveUser)
		admin.POST("/users/:userID/restore", userHandler.HandleRestoreUser)
		admin.DELETE("/users/:userID", userHandler.HandleDeleteUser)

		admin.DELETE("/lessons/:lessonID", lessonHandler.HandleDeleteLesson)
		admin.DELETE("/equipment/:equipmentID", equipmentHandler.HandleDeleteEquipment)
		admin.DELETE("/payments/:paymentID", paymentHandler.HandleDeletePayment)
	}

	s.Router.GET("/health", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Equestrian CRM API"
	docs.SwaggerInfo.Description = "REST API for managing a riding facility."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
