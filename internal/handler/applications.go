package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
)

// CreateApplication opens a verification application. A resident holds
// at most one live application at a time.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	_, err := h.repository.GetLiveApplicationByApplicant(myInfo.ID)
	switch {
	case err == nil:
		h.errorResponse(w, r, "you already have an application in progress")
		return
	case errors.Is(err, sql.ErrNoRows):
		// no live application, go ahead
	default:
		h.internalServerError(w, r, err)
		return
	}

	application := &domain.AddressApplication{
		ApplicantID: myInfo.ID,
		Status:      domain.ApplicationPending,
	}
	if err := h.repository.CreateApplication(application); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "application submitted", application)
}

// GetApplications lists what the caller's role is entitled to see:
// residents their own history, leaders the pending queue, officers the
// applications awaiting an interview.
func (h *Handler) GetApplications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var applications []*domain.AddressApplication
	var err error
	switch myInfo.Role {
	case domain.RoleResident:
		applications, err = h.repository.GetApplicationsByApplicant(myInfo.ID)
	case domain.RoleLeader:
		applications, err = h.repository.GetApplicationsByStatus(domain.ApplicationPending)
	case domain.RoleOfficer:
		applications, err = h.repository.GetApplicationsByStatus(domain.ApplicationLeaderApproved)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications retrieved", applications)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	application := r.Context().Value(ApplicationCtx).(*domain.AddressApplication)

	if myInfo.Role == domain.RoleResident && application.ApplicantID != myInfo.ID {
		h.errorResponse(w, r, "application not found")
		return
	}

	h.successResponse(w, r, "application retrieved", application)
}

// ReviewApplication records the community leader's vouching decision on
// a pending application.
func (h *Handler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	application := r.Context().Value(ApplicationCtx).(*domain.AddressApplication)

	var req struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	target := domain.ApplicationRejected
	if req.Approve {
		target = domain.ApplicationLeaderApproved
	}
	if err := application.Transition(target); err != nil {
		h.domainError(w, r, err)
		return
	}

	application.LeaderID = &myInfo.ID
	application.LeaderNotes = req.Notes

	if err := h.repository.UpdateApplication(application); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the application was modified concurrently, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// notification delivery is best-effort
	if applicant, err := h.repository.GetUserByID(application.ApplicantID); err == nil {
		if err := h.publishNotification(domain.NotificationMessage{
			Type: "leader_decision",
			To:   applicant.Email,
			Data: domain.LeaderDecisionNotificationData{
				ResidentName: applicant.FullName,
				Approved:     req.Approve,
				Notes:        req.Notes,
			},
		}); err != nil {
			slog.Error("failed to publish leader decision notification", "application", application.ID, "error", err)
		}
	}

	h.successResponse(w, r, "review recorded", application)
}
