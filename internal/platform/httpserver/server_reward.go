package httpserver

import (
	"errors"
	"net/http"

	rewarderrors "pricesaver/contexts/community-experience/reward-service/domain/errors"
)

func writeRewardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rewarderrors.ErrInvalidUserID):
		writeError(w, http.StatusBadRequest, "invalid_user_id", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleWalletBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reward.Handler.BalanceHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeRewardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWalletLedger(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseQueryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	resp, err := s.reward.Handler.LedgerHandler(r.Context(), r.PathValue("user_id"), limit)
	if err != nil {
		writeRewardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
