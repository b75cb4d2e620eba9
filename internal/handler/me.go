package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// GetMyProfile returns the account plus its role-specific profile.
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var profile any
	var err error
	switch myInfo.Role {
	case domain.RoleResident:
		profile, err = h.repository.GetResidentProfile(myInfo.ID)
	case domain.RoleLeader:
		profile, err = h.repository.GetLeaderProfile(myInfo.ID)
	case domain.RoleOfficer:
		profile, err = h.repository.GetOfficerProfile(myInfo.ID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "profile retrieved", map[string]any{
		"user":    myInfo,
		"profile": profile,
	})
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "incorrect old password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "password update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}

// UpdateMyPersonalInfo rewrites identity-bearing fields. Verification is
// lost and pending applications are cancelled, since the leader vouched
// for a person who no longer matches the record.
func (h *Handler) UpdateMyPersonalInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		FirstName   string `json:"firstName" validate:"required"`
		LastName    string `json:"lastName" validate:"required"`
		PhoneNumber string `json:"phoneNumber" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateResidentPersonalInfo(myInfo, req.FirstName, req.LastName, req.PhoneNumber, req.Email); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "profile update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "personal information updated; your address must be verified again", myInfo)
}

// UpdateMyAddress moves the resident: approved applications become
// superseded and a fresh application is opened for the new address.
func (h *Handler) UpdateMyAddress(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Settlement     string `json:"settlement" validate:"required"`
		UnitNumber     string `json:"unitNumber"`
		PostalCode     string `json:"postalCode" validate:"required"`
		IsOwner        bool   `json:"isOwner"`
		Municipality   string `json:"municipality" validate:"required"`
		WardNumber     int32  `json:"wardNumber" validate:"required"`
		CouncillorName string `json:"councillorName"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	application, err := h.repository.UpdateResidentAddress(myInfo, &domain.ResidentProfile{
		Settlement:     req.Settlement,
		UnitNumber:     req.UnitNumber,
		PostalCode:     req.PostalCode,
		IsOwner:        req.IsOwner,
		Municipality:   req.Municipality,
		WardNumber:     req.WardNumber,
		CouncillorName: req.CouncillorName,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "address update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "address updated, a new verification application has been opened", application)
}
