package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolists/internal/models"
)

// handleCreateItem inserts a new item into the list named in the body.
func (s *Server) handleCreateItem(c *gin.Context) {
	var req models.Item
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	id, err := s.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, createdResponse{ID: id})
}

// handleUpdateItem updates an item's title and done flag.
func (s *Server) handleUpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.Item
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.svc.UpdateItem(c.Request.Context(), id, req); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleUpdateItemDetail updates priority, note, color and tag, moving the
// item when the body names another list.
func (s *Server) handleUpdateItemDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.ItemDetail
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.svc.UpdateItemDetail(c.Request.Context(), id, req); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleDeleteItem removes an item completely.
func (s *Server) handleDeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.DeleteItem(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}
