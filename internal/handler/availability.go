package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CreateWeeklySchedule saves a recurring availability template and
// immediately generates bookable slots over the scheduling horizon.
func (h *Handler) CreateWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	officer := r.Context().Value(OfficerCtx).(*domain.OfficerProfile)

	var req struct {
		DayOfWeek int32  `json:"dayOfWeek" validate:"min=0,max=6"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		Breaks    []struct {
			StartTime string `json:"startTime" validate:"required"`
			EndTime   string `json:"endTime" validate:"required"`
		} `json:"breaks" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := &domain.WeeklySchedule{
		OfficerID: myInfo.ID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	for _, b := range req.Breaks {
		schedule.Breaks = append(schedule.Breaks, domain.ScheduledBreak{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}

	if err := utils.ValidateWeeklySchedule(schedule); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateWeeklySchedule(schedule); err != nil {
		h.domainError(w, r, err)
		return
	}

	added, err := h.repository.GenerateSlots(schedule, officer, time.Now())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule created", map[string]any{
		"schedule":   schedule,
		"slotsAdded": added,
	})
}

func (h *Handler) GetMyWeeklySchedules(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	schedules, err := h.repository.GetWeeklySchedulesByOfficer(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules retrieved", schedules)
}

func (h *Handler) DeleteWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	scheduleIDParam := chi.URLParam(r, "id")
	scheduleID, err := strconv.ParseInt(scheduleIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid schedule ID")
		return
	}

	deleted, err := h.repository.DeactivateWeeklySchedule(scheduleID, myInfo.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule deleted", map[string]any{
		"slotsRemoved": deleted,
	})
}

// ClearMyAvailability deactivates every schedule and removes every
// future unbooked slot in one stroke.
func (h *Handler) ClearMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	deleted, err := h.repository.ClearOfficerAvailability(myInfo.ID, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability cleared", map[string]any{
		"slotsRemoved": deleted,
	})
}

func (h *Handler) CreateAdHocSlot(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	officer := r.Context().Value(OfficerCtx).(*domain.OfficerProfile)

	var req struct {
		StartTime time.Time `json:"start_time" validate:"required"`
		EndTime   time.Time `json:"end_time" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateAdHocSlot(req.StartTime, req.EndTime, time.Now()); err != nil {
		h.domainError(w, r, err)
		return
	}

	slot := &domain.AvailableTimeSlot{
		OfficerID:    myInfo.ID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Municipality: officer.Municipality,
		StationName:  officer.StationName,
		PostalCode:   officer.PostalCode,
	}
	if err := h.repository.CreateAdHocSlot(slot); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "time slot created", slot)
}

func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	slotIDParam := chi.URLParam(r, "id")
	slotID, err := strconv.ParseInt(slotIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid slot ID")
		return
	}

	if err := h.repository.DeleteSlot(slotID, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "time slot not found")
		default:
			h.domainError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "time slot deleted", nil)
}

// GetMyCalendar returns the officer's own slots, booked ones included.
func (h *Handler) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	slots, err := h.repository.GetSlotsByOfficer(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "calendar retrieved", slots)
}
