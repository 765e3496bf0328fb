package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type listRequest struct {
	Title string `json:"title"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

// handleListAll returns all live lists with their items and the priority levels.
func (s *Server) handleListAll(c *gin.Context) {
	snap, err := s.svc.ListAll(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, snap)
}

// handleCreateList creates a new list entity.
func (s *Server) handleCreateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	id, err := s.svc.CreateList(c.Request.Context(), req.Title)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, createdResponse{ID: id})
}

// handleUpdateList renames an existing list.
func (s *Server) handleUpdateList(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.svc.UpdateList(c.Request.Context(), id, req.Title); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleDeleteList removes a list.
func (s *Server) handleDeleteList(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.DeleteList(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}
