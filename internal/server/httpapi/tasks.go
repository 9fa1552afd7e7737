package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mzhadan/pomotrack/internal/server/tasks"
)

type createTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TaskType    string `json:"task_type" binding:"required"`
	Status      string `json:"status"`
}

type linkTagInput struct {
	TagID string `json:"tag_id" binding:"required"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskType    string `json:"task_type"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Version     int64  `json:"version"`
}

func toTaskResponse(t *tasks.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TaskType:    string(t.Type),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(timeLayout),
		UpdatedAt:   t.UpdatedAt.Format(timeLayout),
		Version:     t.Version,
	}
}

func toTaskResponses(items []*tasks.Task) []taskResponse {
	out := make([]taskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func (s *Server) createTask(c *gin.Context) {
	var in createTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUserID(c),
		in.Title, in.Description, tasks.Type(in.TaskType), tasks.Status(in.Status))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *Server) listTasks(c *gin.Context) {
	s.listTasksOfType(c, "")
}

func (s *Server) listTodos(c *gin.Context) {
	s.listTasksOfType(c, tasks.TypeTodo)
}

func (s *Server) listDistractions(c *gin.Context) {
	s.listTasksOfType(c, tasks.TypeDistraction)
}

func (s *Server) listTasksOfType(c *gin.Context, taskType tasks.Type) {
	items, err := s.tasks.List(c.Request.Context(), currentUserID(c), taskType)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponses(items))
}

func (s *Server) completeTask(c *gin.Context) {
	if err := s.tasks.Complete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task completed"})
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func (s *Server) linkTag(c *gin.Context) {
	var in linkTagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := s.links.Link(c.Request.Context(), currentUserID(c), c.Param("id"), in.TagID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      link.ID,
		"task_id": link.TaskID,
		"tag_id":  link.TagID,
	})
}

func (s *Server) listTaskTags(c *gin.Context) {
	links, err := s.links.ListByTask(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	type linkResponse struct {
		ID     string `json:"id"`
		TaskID string `json:"task_id"`
		TagID  string `json:"tag_id"`
	}

	out := make([]linkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, linkResponse{ID: l.ID, TaskID: l.TaskID, TagID: l.TagID})
	}
	c.JSON(http.StatusOK, out)
}
