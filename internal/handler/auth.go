package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const uniqueViolationCode = "23505"

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role        string `json:"role" validate:"required,oneof=resident leader officer"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8"`
		FirstName   string `json:"firstName" validate:"required"`
		LastName    string `json:"lastName" validate:"required"`
		IDNumber    string `json:"idNumber" validate:"required_unless=Role officer,omitempty,len=13,numeric"`
		PhoneNumber string `json:"phoneNumber" validate:"required"`

		// resident and leader address fields
		Settlement     string `json:"settlement" validate:"required_unless=Role officer"`
		UnitNumber     string `json:"unitNumber"`
		PostalCode     string `json:"postalCode" validate:"required"`
		IsOwner        bool   `json:"isOwner"`
		Municipality   string `json:"municipality" validate:"required"`
		WardNumber     int32  `json:"wardNumber" validate:"required_unless=Role officer"`
		CouncillorName string `json:"councillorName"`
		OfficeLocation string `json:"officeLocation" validate:"required_if=Role leader"`

		// officer fields
		BadgeNumber string `json:"badgeNumber" validate:"required_if=Role officer"`
		Rank        string `json:"rank" validate:"required_if=Role officer"`
		StationName string `json:"stationName" validate:"required_if=Role officer"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FullName:     req.FirstName + " " + req.LastName,
		Role:         domain.Role(req.Role),
	}
	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			h.errorResponse(w, r, "this email is already registered")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	switch user.Role {
	case domain.RoleResident:
		err = h.repository.CreateResidentProfile(&domain.ResidentProfile{
			UserID:         user.ID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			IDNumber:       req.IDNumber,
			PhoneNumber:    req.PhoneNumber,
			Settlement:     req.Settlement,
			UnitNumber:     req.UnitNumber,
			PostalCode:     req.PostalCode,
			IsOwner:        req.IsOwner,
			Municipality:   req.Municipality,
			WardNumber:     req.WardNumber,
			CouncillorName: req.CouncillorName,
		})
	case domain.RoleLeader:
		err = h.repository.CreateLeaderProfile(&domain.LeaderProfile{
			UserID:         user.ID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			IDNumber:       req.IDNumber,
			PhoneNumber:    req.PhoneNumber,
			Municipality:   req.Municipality,
			WardNumber:     req.WardNumber,
			OfficeLocation: req.OfficeLocation,
			Settlement:     req.Settlement,
			UnitNumber:     req.UnitNumber,
			PostalCode:     req.PostalCode,
		})
	case domain.RoleOfficer:
		err = h.repository.CreateOfficerProfile(&domain.OfficerProfile{
			UserID:       user.ID,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IDNumber:     req.IDNumber,
			PhoneNumber:  req.PhoneNumber,
			BadgeNumber:  req.BadgeNumber,
			Rank:         req.Rank,
			StationName:  req.StationName,
			Municipality: req.Municipality,
			PostalCode:   req.PostalCode,
		})
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	message := "registration successful"
	if user.Role != domain.RoleResident {
		message = "registration successful, your account is pending approval"
	}
	h.successResponse(w, r, message, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "incorrect email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "incorrect email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// leaders and officers cannot act until approved; accounts without a
	// profile (the bootstrap admin) are exempt
	if msg, err := h.pendingApprovalMessage(user); err != nil {
		h.internalServerError(w, r, err)
		return
	} else if msg != "" {
		h.errorResponse(w, r, msg)
		return
	}

	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     "__address_manager_token",
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "login successful", user)
}

func (h *Handler) pendingApprovalMessage(user *domain.User) (string, error) {
	switch user.Role {
	case domain.RoleLeader:
		profile, err := h.repository.GetLeaderProfile(user.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if !profile.IsApproved {
			return "your leader account is pending approval", nil
		}
	case domain.RoleOfficer:
		profile, err := h.repository.GetOfficerProfile(user.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if !profile.IsApproved {
			return "your officer account is pending approval", nil
		}
	}
	return "", nil
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    "__address_manager_token",
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "logout successful", nil)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// tell the client the code was sent regardless, so the
			// endpoint cannot be used to probe for accounts
			h.successResponse(w, r, "a verification code has been sent by email", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_reset_password", user.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	err = h.publishNotification(domain.NotificationMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordNotificationData{
			FullName:   user.FullName,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60,
		},
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "a verification code has been sent by email", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Result()
	if err != nil {
		h.errorResponse(w, r, "incorrect verification code")
		return
	}

	if otp != req.OTP {
		h.errorResponse(w, r, "incorrect verification code")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password reset successful", nil)
}
