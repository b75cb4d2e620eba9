package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/repository"
)

// BookAppointment books a slot against the caller's leader-approved
// application.
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		SlotID        int64 `json:"slotId" validate:"required"`
		ApplicationID int64 `json:"applicationId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	application, err := h.repository.GetApplicationByID(req.ApplicationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "application not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	appointment, err := h.repository.BookSlot(myInfo.ID, application, req.SlotID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "time slot not found")
		default:
			h.domainError(w, r, err)
		}
		return
	}

	h.notifyBooking(myInfo, appointment, application, req.SlotID)

	message := "appointment booked"
	if application.Status == domain.ApplicationApproved {
		message = "appointment booked and address verified"
	}
	h.successResponse(w, r, message, map[string]any{
		"appointment": appointment,
		"application": application,
	})
}

func (h *Handler) notifyBooking(resident *domain.User, appt *domain.Appointment, app *domain.AddressApplication, slotID int64) {
	stationName := ""
	if slot, err := h.repository.GetSlotByID(slotID); err == nil {
		stationName = slot.StationName
	}

	if err := h.publishNotification(domain.NotificationMessage{
		Type: "booking",
		To:   resident.Email,
		Data: domain.BookingNotificationData{
			ResidentName: resident.FullName,
			StationName:  stationName,
			ScheduledAt:  appt.ScheduledAt.Format(time.RFC3339),
		},
	}); err != nil {
		slog.Error("failed to publish booking notification", "appointment", appt.ID, "error", err)
	}

	if app.Status == domain.ApplicationApproved {
		h.notifyCertificate(resident, app.ID)
	}
}

func (h *Handler) notifyCertificate(resident *domain.User, applicationID int64) {
	certificate, err := h.repository.GetCertificateByApplication(applicationID)
	if err != nil {
		slog.Error("failed to load certificate for notification", "application", applicationID, "error", err)
		return
	}

	if err := h.publishNotification(domain.NotificationMessage{
		Type: "certificate_issued",
		To:   resident.Email,
		Data: domain.CertificateNotificationData{
			ResidentName:      resident.FullName,
			CertificateNumber: certificate.CertificateNumber,
			ExpiryDate:        certificate.ExpiryDate.Format("2006-01-02"),
		},
	}); err != nil {
		slog.Error("failed to publish certificate notification", "application", applicationID, "error", err)
	}
}

// CancelAppointment backs the resident out of a scheduled interview and
// reopens the slot.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	cancelled, err := h.repository.CancelAppointment(appointment.ID, myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.publishNotification(domain.NotificationMessage{
		Type: "cancellation",
		To:   myInfo.Email,
		Data: domain.CancellationNotificationData{
			ResidentName: myInfo.FullName,
			ScheduledAt:  cancelled.ScheduledAt.Format(time.RFC3339),
		},
	}); err != nil {
		slog.Error("failed to publish cancellation notification", "appointment", cancelled.ID, "error", err)
	}

	h.successResponse(w, r, "appointment cancelled", cancelled)
}

func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var appointments []*domain.Appointment
	var err error
	switch myInfo.Role {
	case domain.RoleOfficer:
		appointments, err = h.repository.GetAppointmentsByOfficer(myInfo.ID)
	default:
		appointments, err = h.repository.GetAppointmentsByResident(myInfo.ID)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointments retrieved", appointments)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	if appointment.ResidentID != myInfo.ID && appointment.OfficerID != myInfo.ID {
		h.errorResponse(w, r, "appointment not found")
		return
	}

	h.successResponse(w, r, "appointment retrieved", appointment)
}

// DecideAppointment records the officer's interview outcome.
func (h *Handler) DecideAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	var req struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject reschedule"`
		Notes    string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	decided, err := h.repository.DecideAppointment(myInfo.ID, appointment.ID, repository.AppointmentDecision(req.Decision), req.Notes, time.Now())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if req.Decision == "approve" {
		if resident, err := h.repository.GetUserByID(decided.ResidentID); err == nil {
			h.notifyCertificate(resident, decided.ApplicationID)
		}
	}

	h.successResponse(w, r, "decision recorded", decided)
}
