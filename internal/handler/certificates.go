package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMyCertificates(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	certificates, err := h.repository.GetCertificatesByApplicant(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "certificates retrieved", certificates)
}

func (h *Handler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	certIDParam := chi.URLParam(r, "id")
	certID, err := strconv.ParseInt(certIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid certificate ID")
		return
	}

	certificate, err := h.repository.GetCertificateByID(certID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "certificate not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// only the applicant may read their certificate
	application, err := h.repository.GetApplicationByID(certificate.ApplicationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if application.ApplicantID != myInfo.ID {
		h.errorResponse(w, r, "certificate not found")
		return
	}

	h.successResponse(w, r, "certificate retrieved", certificate)
}
