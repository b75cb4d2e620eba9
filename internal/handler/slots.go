package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SearchSlots finds future unbooked slots at a station. The location
// triple must match exactly; residents shop by place, not by officer.
func (h *Handler) SearchSlots(w http.ResponseWriter, r *http.Request) {
	municipality := r.URL.Query().Get("municipality")
	station := r.URL.Query().Get("station")
	postal := r.URL.Query().Get("postal")

	if municipality == "" || station == "" || postal == "" {
		h.errorResponse(w, r, "municipality, station and postal are required")
		return
	}

	slots, err := h.repository.SearchSlotsByLocation(municipality, station, postal, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "time slots retrieved", slots)
}

func (h *Handler) GetOfficerSlots(w http.ResponseWriter, r *http.Request) {
	officerIDParam := chi.URLParam(r, "id")
	officerID, err := strconv.ParseInt(officerIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid officer ID")
		return
	}

	profile, err := h.repository.GetOfficerProfile(officerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "officer not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !profile.IsApproved {
		h.errorResponse(w, r, "officer not found")
		return
	}

	slots, err := h.repository.GetUpcomingSlotsByOfficer(officerID, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "time slots retrieved", slots)
}

func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slot := r.Context().Value(SlotCtx).(*domain.AvailableTimeSlot)
	h.successResponse(w, r, "time slot retrieved", slot)
}
