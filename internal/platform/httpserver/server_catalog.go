package httpserver

import (
	"errors"
	"net/http"

	catalogerrors "pricesaver/contexts/price-intelligence/catalog-service/domain/errors"
	cataloghttp "pricesaver/contexts/price-intelligence/catalog-service/transport/http"
)

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrInvalidCatalogInput):
		writeError(w, http.StatusBadRequest, "invalid_catalog_input", err.Error())
	case errors.Is(err, catalogerrors.ErrDuplicateItem):
		writeError(w, http.StatusConflict, "duplicate_item", err.Error())
	case errors.Is(err, catalogerrors.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrStoreNotFound):
		writeError(w, http.StatusNotFound, "store_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req cataloghttp.CreateStoreRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.catalog.Handler.CreateStoreHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListStoresHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req cataloghttp.CreateItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.catalog.Handler.CreateItemHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListItemsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
