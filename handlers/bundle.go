package handlers

import (
	"context"

	"tourhub/services/authz"
	"tourhub/services/booking"
	"tourhub/services/cascade"
	"tourhub/services/media"
	"tourhub/services/payment"
	"tourhub/services/session"
	"tourhub/services/stats"
	"tourhub/services/story"
	"tourhub/services/tourpackage"
	"tourhub/services/user"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the collaborators the route
// middlewares need.
type HandlerBundle struct {
	Sessions session.SessionService
	Resolver authz.RoleResolver

	// Session endpoints
	IssueTokenHandler gin.HandlerFunc
	LogoutHandler     gin.HandlerFunc

	// User endpoints
	CreateUserHandler    gin.HandlerFunc
	GetUserRoleHandler   gin.HandlerFunc
	ApplyForGuideHandler gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	RandomGuidesHandler  gin.HandlerFunc

	// Admin endpoints
	ListCandidatesHandler  gin.HandlerFunc
	DecideCandidateHandler gin.HandlerFunc
	ListAllUsersHandler    gin.HandlerFunc
	DeleteUserHandler      gin.HandlerFunc
	AdminStatsHandler      gin.HandlerFunc

	// Package endpoints
	CreatePackageHandler  gin.HandlerFunc
	ListPackagesHandler   gin.HandlerFunc
	RandomPackagesHandler gin.HandlerFunc
	GetPackageHandler     gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler       gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	DeleteBookingHandler       gin.HandlerFunc
	MyOrdersHandler            gin.HandlerFunc
	AssignedToursHandler       gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc

	// Payment endpoints
	CreatePaymentIntentHandler gin.HandlerFunc
	RecordPaymentHandler       gin.HandlerFunc
	PatchBookingPaymentHandler gin.HandlerFunc

	// Story endpoints
	CreateStoryHandler      gin.HandlerFunc
	ListAllStoriesHandler   gin.HandlerFunc
	ListMyStoriesHandler    gin.HandlerFunc
	GetStoryHandler         gin.HandlerFunc
	UpdateStoryHandler      gin.HandlerFunc
	AddStoryImagesHandler   gin.HandlerFunc
	RemoveStoryImageHandler gin.HandlerFunc
	DeleteStoryHandler      gin.HandlerFunc

	// Upload endpoints; nil when Cloudinary is not configured.
	UploadImageHandler gin.HandlerFunc
	DeleteImageHandler gin.HandlerFunc

	// Health
	HealthHandler gin.HandlerFunc
}

// Services are the collaborators a HandlerBundle is built from. Media and
// Health are optional.
type Services struct {
	Sessions session.SessionService
	Resolver authz.RoleResolver
	Users    user.UserService
	Cascade  cascade.Coordinator
	Stats    stats.Aggregator
	Packages tourpackage.PackageService
	Bookings booking.BookingService
	Gateway  payment.Gateway
	Stories  story.StoryService
	Media    media.MediaService
	Health   func(ctx context.Context) utils.HealthStatus
}

func NewHandlerBundle(svc Services) *HandlerBundle {
	authHandler := NewAuthHandler(svc.Sessions)
	userHandler := NewUserHandler(svc.Users, svc.Cascade, svc.Resolver)
	adminHandler := NewAdminHandler(svc.Users, svc.Stats)
	packageHandler := NewPackageHandler(svc.Packages)
	bookingHandler := NewBookingHandler(svc.Bookings, svc.Resolver)
	paymentHandler := NewPaymentHandler(svc.Gateway, svc.Cascade)
	storyHandler := NewStoryHandler(svc.Stories, svc.Resolver)

	hb := &HandlerBundle{
		Sessions: svc.Sessions,
		Resolver: svc.Resolver,

		IssueTokenHandler: authHandler.IssueTokenHandler,
		LogoutHandler:     authHandler.LogoutHandler,

		CreateUserHandler:    userHandler.CreateUserHandler,
		GetUserRoleHandler:   userHandler.GetUserRoleHandler,
		ApplyForGuideHandler: userHandler.ApplyForGuideHandler,
		UpdateProfileHandler: userHandler.UpdateProfileHandler,
		RandomGuidesHandler:  userHandler.RandomGuidesHandler,

		ListCandidatesHandler:  adminHandler.ListCandidatesHandler,
		DecideCandidateHandler: adminHandler.DecideCandidateHandler,
		ListAllUsersHandler:    adminHandler.ListAllUsersHandler,
		DeleteUserHandler:      adminHandler.DeleteUserHandler,
		AdminStatsHandler:      adminHandler.StatsHandler,

		CreatePackageHandler:  packageHandler.CreatePackageHandler,
		ListPackagesHandler:   packageHandler.ListPackagesHandler,
		RandomPackagesHandler: packageHandler.RandomPackagesHandler,
		GetPackageHandler:     packageHandler.GetPackageHandler,

		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		ListBookingsHandler:        bookingHandler.ListBookingsHandler,
		DeleteBookingHandler:       bookingHandler.DeleteBookingHandler,
		MyOrdersHandler:            bookingHandler.MyOrdersHandler,
		AssignedToursHandler:       bookingHandler.AssignedToursHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,

		CreatePaymentIntentHandler: paymentHandler.CreatePaymentIntentHandler,
		RecordPaymentHandler:       paymentHandler.RecordPaymentHandler,
		PatchBookingPaymentHandler: paymentHandler.PatchBookingPaymentHandler,

		CreateStoryHandler:      storyHandler.CreateStoryHandler,
		ListAllStoriesHandler:   storyHandler.ListAllStoriesHandler,
		ListMyStoriesHandler:    storyHandler.ListMyStoriesHandler,
		GetStoryHandler:         storyHandler.GetStoryHandler,
		UpdateStoryHandler:      storyHandler.UpdateStoryHandler,
		AddStoryImagesHandler:   storyHandler.AddStoryImagesHandler,
		RemoveStoryImageHandler: storyHandler.RemoveStoryImageHandler,
		DeleteStoryHandler:      storyHandler.DeleteStoryHandler,
	}

	if svc.Media != nil {
		uploadHandler := NewUploadHandler(svc.Media)
		hb.UploadImageHandler = uploadHandler.UploadImageHandler
		hb.DeleteImageHandler = uploadHandler.DeleteImageHandler
	}
	if svc.Health != nil {
		hb.HealthHandler = HealthHandler(svc.Health)
	}
	return hb
}
