package v1

import (
	"log"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	"gigmatch/internal/delivery/http/handler"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/notify"
	"gigmatch/internal/pkg/jwt"
	"gigmatch/internal/repository"
	"gigmatch/internal/usecase"
	useruc "gigmatch/internal/usecase/user"
	"gigmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, bridge *notify.Bridge, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	subjectRepo := repository.NewPostgresSubjectRepository(db)
	applicationRepo := repository.NewPostgresApplicationRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	subjectUC := usecase.NewSubjectUsecase(subjectRepo, logger)
	lifecycleUC := usecase.NewLifecycleUsecase(subjectRepo, applicationRepo, bridge, logger)
	chatUC := usecase.NewChatUsecase(messageRepo, userRepo, bridge, logger)
	userSvc := useruc.NewService(userRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userSvc)
	jobHandler := handler.NewJobHandler(subjectUC)
	offerHandler := handler.NewOfferHandler(subjectUC)
	applicationHandler := handler.NewApplicationHandler(lifecycleUC)
	chatHandler := handler.NewChatHandler(chatUC)
	wsHandler := ws.NewHandler(hub, logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	jobsGroup := protected.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)
	applicationHandler.RegisterSubjectRoutes(jobsGroup)

	offersGroup := protected.Group("/offers")
	offerHandler.RegisterRoutes(offersGroup)
	applicationHandler.RegisterSubjectRoutes(offersGroup)

	applicationsGroup := protected.Group("/applications")
	applicationHandler.RegisterRoutes(applicationsGroup)

	chatsGroup := protected.Group("/chats")
	chatHandler.RegisterRoutes(chatsGroup)

	protected.Get("/ws", wsHandler.HandleWS)
}
