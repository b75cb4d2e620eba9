package handler

import (
	"github.com/amandla-civic/address-manager/backend/internal/config"
	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate            *validator.Validate
	config              *config.Config
	repository          *repository.Repository
	translator          ut.Translator
	notificationChannel *amqp.Channel
	redisClient         *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:            validate,
		config:              cfg,
		repository:          repo,
		translator:          trans,
		notificationChannel: notifyCh,
		redisClient:         rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-profile", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyProfile)
			r.Patch("/password", h.UpdateMyPassword)
			r.With(h.RequiredRole([]domain.Role{domain.RoleResident})).Patch("/personal-info", h.UpdateMyPersonalInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleResident})).Put("/address", h.UpdateMyAddress)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleResident})).Post("/", h.CreateApplication)
			r.Get("/", h.GetApplications)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.application)
				r.Get("/", h.GetApplication)
				r.With(h.RequiredRole([]domain.Role{domain.RoleLeader})).Post("/review", h.ReviewApplication)
			})
		})

		r.Route("/availability", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.RequiredRole([]domain.Role{domain.RoleOfficer}))
			r.Use(h.approvedOfficer)
			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", h.CreateWeeklySchedule)
				r.Get("/", h.GetMyWeeklySchedules)
				r.Delete("/", h.ClearMyAvailability)
				r.Delete("/{id}", h.DeleteWeeklySchedule)
			})
			r.Route("/slots", func(r chi.Router) {
				r.Post("/", h.CreateAdHocSlot)
				r.Get("/", h.GetMyCalendar)
				r.Delete("/{id}", h.DeleteSlot)
			})
		})

		r.Route("/slots", func(r chi.Router) {
			r.Get("/", h.SearchSlots)
			r.With(h.slot).Get("/{id}", h.GetSlot)
		})
		r.Get("/officers/{id}/slots", h.GetOfficerSlots)

		r.Route("/appointments", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleResident})).Post("/", h.BookAppointment)
			r.Get("/", h.GetAppointments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.appointment)
				r.Get("/", h.GetAppointment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleResident})).Post("/cancel", h.CancelAppointment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleOfficer})).Post("/decision", h.DecideAppointment)
			})
		})

		r.With(h.myInfo).Get("/my-certificates", h.GetMyCertificates)
		r.With(h.myInfo).Get("/certificates/{id}", h.GetCertificate)
	})
}
