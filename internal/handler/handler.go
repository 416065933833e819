package handler

import "smart-campus/internal/service"

type Handlers struct {
	Auth              *AuthHandler
	User              *UserHandler
	PermissionRequest *PermissionRequestHandler
	Notification      *NotificationHandler
	Club              *ClubHandler
	Event             *EventHandler
	LostItem          *LostItemHandler
	Feedback          *FeedbackHandler
	Media             *MediaHandler
	Dashboard         *DashboardHandler
	Audit             *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:              NewAuthHandler(services.Auth),
		User:              NewUserHandler(services.User),
		PermissionRequest: NewPermissionRequestHandler(services.PermissionRequest),
		Notification:      NewNotificationHandler(services.Notification),
		Club:              NewClubHandler(services.Club),
		Event:             NewEventHandler(services.Event),
		LostItem:          NewLostItemHandler(services.LostFound),
		Feedback:          NewFeedbackHandler(services.Feedback),
		Media:             NewMediaHandler(services.Media),
		Dashboard:         NewDashboardHandler(services.Dashboard),
		Audit:             NewAuditHandler(services.Audit),
	}
}
