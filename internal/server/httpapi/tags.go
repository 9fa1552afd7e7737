package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mzhadan/pomotrack/internal/server/tags"
)

type createTagInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type tagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Version   int64  `json:"version"`
}

func toTagResponse(t *tags.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt.Format(timeLayout),
		UpdatedAt: t.UpdatedAt.Format(timeLayout),
		Version:   t.Version,
	}
}

func (s *Server) createTag(c *gin.Context) {
	var in createTagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := s.tags.Create(c.Request.Context(), currentUserID(c), in.Name, in.Color)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTagResponse(tag))
}

func (s *Server) listTags(c *gin.Context) {
	items, err := s.tags.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]tagResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTagResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteTag(c *gin.Context) {
	if err := s.tags.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
