package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/fetch"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/server/middleware"
	"github.com/jonathan/pastry-blog/internal/types"
)

// maxRequestBytes caps admin request bodies.
const maxRequestBytes = 1 << 20

type validatable interface {
	Validate() error
}

// decodeRequest reads and validates a JSON body, answering 400 on failure.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// pathID parses the {id} path value, answering 400 when it is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "id", Message: "must be a UUID"}).Error())
		return uuid.Nil, false
	}
	return id, true
}

// storeError maps store sentinels onto 404 and 409.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, noun string) {
	switch status := HTTPStatus(err); status {
	case http.StatusNotFound:
		s.errorResponse(w, status, noun+" not found")
	case http.StatusConflict:
		s.errorResponse(w, status, noun+" already exists")
	default:
		s.internalError(w, r, err, "Failed to save "+noun)
	}
}

func (s *Server) audit(r *http.Request, action, noun string, id uuid.UUID) {
	admin, _ := middleware.GetAdminEmail(r)
	logging.Ctx(r.Context()).Info().
		Str("admin", admin).
		Str("action", action).
		Str("kind", noun).
		Str("id", id.String()).
		Msg("content changed")
}

// deleteHandler removes one item by id.
func deleteHandler(s *Server, noun string, del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r)
		if !ok {
			return
		}
		if err := del(r.Context(), id); err != nil {
			s.storeError(w, r, err, noun)
			return
		}
		s.audit(r, "delete", noun, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req types.RecipeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	recipe := req.ToRecipe()
	if err := content.PrepareRecipe(&recipe); err != nil {
		s.internalError(w, r, err, "Failed to prepare recipe")
		return
	}
	if err := s.store.CreateRecipe(r.Context(), &recipe); err != nil {
		s.storeError(w, r, err, "Recipe")
		return
	}
	s.audit(r, "create", "Recipe", recipe.ID)
	s.jsonResponse(w, http.StatusCreated, recipe)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	recipe := req.ToRecipe()
	recipe.ID = id
	if err := content.PrepareRecipe(&recipe); err != nil {
		s.internalError(w, r, err, "Failed to prepare recipe")
		return
	}
	if err := s.store.UpdateRecipe(r.Context(), &recipe); err != nil {
		s.storeError(w, r, err, "Recipe")
		return
	}
	s.audit(r, "update", "Recipe", id)
	s.jsonResponse(w, http.StatusOK, recipe)
}

func (s *Server) handleCreateTechnique(w http.ResponseWriter, r *http.Request) {
	var req types.TechniqueRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	technique := req.ToTechnique()
	if err := content.PrepareTechnique(&technique); err != nil {
		s.internalError(w, r, err, "Failed to prepare technique")
		return
	}
	if err := s.store.CreateTechnique(r.Context(), &technique); err != nil {
		s.storeError(w, r, err, "Technique")
		return
	}
	s.audit(r, "create", "Technique", technique.ID)
	s.jsonResponse(w, http.StatusCreated, technique)
}

func (s *Server) handleUpdateTechnique(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.TechniqueRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	technique := req.ToTechnique()
	technique.ID = id
	if err := content.PrepareTechnique(&technique); err != nil {
		s.internalError(w, r, err, "Failed to prepare technique")
		return
	}
	if err := s.store.UpdateTechnique(r.Context(), &technique); err != nil {
		s.storeError(w, r, err, "Technique")
		return
	}
	s.audit(r, "update", "Technique", id)
	s.jsonResponse(w, http.StatusOK, technique)
}

func (s *Server) handleCreateScience(w http.ResponseWriter, r *http.Request) {
	var req types.ScienceRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	article := req.ToScience()
	if err := content.PrepareScience(&article); err != nil {
		s.internalError(w, r, err, "Failed to prepare science article")
		return
	}
	if err := s.store.CreateScience(r.Context(), &article); err != nil {
		s.storeError(w, r, err, "Science article")
		return
	}
	s.audit(r, "create", "Science article", article.ID)
	s.jsonResponse(w, http.StatusCreated, article)
}

func (s *Server) handleUpdateScience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.ScienceRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	article := req.ToScience()
	article.ID = id
	if err := content.PrepareScience(&article); err != nil {
		s.internalError(w, r, err, "Failed to prepare science article")
		return
	}
	if err := s.store.UpdateScience(r.Context(), &article); err != nil {
		s.storeError(w, r, err, "Science article")
		return
	}
	s.audit(r, "update", "Science article", id)
	s.jsonResponse(w, http.StatusOK, article)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req types.ProductRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	product := req.ToProduct()
	if err := s.store.CreateProduct(r.Context(), &product); err != nil {
		s.storeError(w, r, err, "Product")
		return
	}
	s.audit(r, "create", "Product", product.ID)
	s.jsonResponse(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.ProductRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	product := req.ToProduct()
	product.ID = id
	if err := s.store.UpdateProduct(r.Context(), &product); err != nil {
		s.storeError(w, r, err, "Product")
		return
	}
	s.audit(r, "update", "Product", id)
	s.jsonResponse(w, http.StatusOK, product)
}

// handleRefreshProduct re-reads image, price and currency from the product's
// affiliate page.
func (s *Server) handleRefreshProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err, "Failed to load product")
		return
	}
	if product == nil {
		s.errorResponse(w, http.StatusNotFound, "Product not found")
		return
	}

	info, err := fetch.ProductMetadata(r.Context(), product.AffiliateURL, s.fetchOptions)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("url", product.AffiliateURL).Msg("product refresh failed")
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch product page")
			return
		}
		s.errorResponse(w, http.StatusUnprocessableEntity, "Product page has no usable metadata")
		return
	}

	info.Apply(product)
	if err := s.store.UpdateProduct(r.Context(), product); err != nil {
		s.storeError(w, r, err, "Product")
		return
	}
	s.audit(r, "refresh", "Product", id)
	s.jsonResponse(w, http.StatusOK, product)
}
