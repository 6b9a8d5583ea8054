package httpserver

import (
	"errors"
	"net/http"

	submissionerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	submissionhttp "pricesaver/contexts/price-intelligence/submission-service/transport/http"
)

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrInvalidDraftInput):
		writeError(w, http.StatusBadRequest, "invalid_draft", err.Error())
	case errors.Is(err, submissionerrors.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, "draft_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrDraftFinalized):
		writeError(w, http.StatusConflict, "draft_finalized", err.Error())
	case errors.Is(err, submissionerrors.ErrStoreNotFound):
		writeError(w, http.StatusNotFound, "store_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.SubmitDraftRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.submission.Handler.SubmitDraftHandler(r.Context(), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.DraftsSubmitted.Inc()
	}
	s.countRequest("submit_draft", http.StatusCreated)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submission.Handler.GetDraftHandler(r.Context(), r.PathValue("draft_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseQueryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	resp, err := s.submission.Handler.ListDraftsHandler(r.Context(), r.URL.Query().Get("status"), limit)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListObservations(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseQueryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	resp, err := s.submission.Handler.ListObservationsHandler(r.Context(), limit)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	req := submissionhttp.ApproveDraftRequest{}
	if r.ContentLength > 0 && !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.submission.Handler.ApproveDraftHandler(r.Context(), r.PathValue("draft_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.DraftsApproved.Inc()
	}
	s.countRequest("approve_draft", http.StatusOK)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	req := submissionhttp.RejectDraftRequest{}
	if r.ContentLength > 0 && !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.submission.Handler.RejectDraftHandler(r.Context(), r.PathValue("draft_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.DraftsRejected.Inc()
	}
	s.countRequest("reject_draft", http.StatusOK)
	writeJSON(w, http.StatusOK, resp)
}
