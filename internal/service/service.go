package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"smart-campus/internal/config"
	"smart-campus/internal/repository"
	"smart-campus/internal/service/audit"
	"smart-campus/internal/service/auth"
	"smart-campus/internal/service/club"
	"smart-campus/internal/service/dashboard"
	"smart-campus/internal/service/email"
	"smart-campus/internal/service/event"
	"smart-campus/internal/service/feedback"
	"smart-campus/internal/service/lostfound"
	"smart-campus/internal/service/media"
	"smart-campus/internal/service/notification"
	"smart-campus/internal/service/permissionrequest"
	"smart-campus/internal/service/user"
)

type Services struct {
	Auth              auth.Service
	User              user.Service
	PermissionRequest permissionrequest.Service
	Notification      notification.Service
	Club              club.Service
	Event             event.Service
	LostFound         lostfound.Service
	Feedback          feedback.Service
	Email             email.Service
	Media             media.Service
	Dashboard         dashboard.Service
	Audit             audit.Service
}

func NewServices(manager *repository.Manager, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	repos := manager.Repositories

	emailService := email.NewService(cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)
	authService := auth.NewService(repos.User, repos.Session, notificationService, cfg)
	userService := user.NewService(repos.User)

	permissionRequestService := permissionrequest.NewService(
		repos.PermissionRequest,
		repos.User,
		repos.Club,
		repos.Event,
		repos.AuditLog,
		manager,
		notificationService,
	)

	clubService := club.NewService(repos.Club, repos.User)
	eventService := event.NewService(repos.Event, repos.User)
	lostFoundService := lostfound.NewService(repos.LostItem, repos.User)
	feedbackService := feedback.NewService(repos.Feedback, repos.User, notificationService)
	mediaService := media.NewService(minioClient, cfg)
	dashboardService := dashboard.NewService(repos.Event, repos.Club, repos.LostItem, repos.User, repos.PermissionRequest, redisClient)
	auditService := audit.NewService(repos.AuditLog)

	return &Services{
		Auth:              authService,
		User:              userService,
		PermissionRequest: permissionRequestService,
		Notification:      notificationService,
		Club:              clubService,
		Event:             eventService,
		LostFound:         lostFoundService,
		Feedback:          feedbackService,
		Email:             emailService,
		Media:             mediaService,
		Dashboard:         dashboardService,
		Audit:             auditService,
	}
}
