package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"vmap-rag/internal/model"
	"vmap-rag/internal/rag"
	"vmap-rag/internal/transport/http/middleware"
	"vmap-rag/internal/transport/http/response"
)

// AnswerCache memoizes answers per session. Implemented by cache.AnswerCache.
type AnswerCache interface {
	Get(ctx context.Context, sessionID, question string) (string, bool, error)
	Set(ctx context.Context, sessionID, question, answer string) error
	Purge(ctx context.Context, sessionID string) error
}

// QueryLogPublisher ships answered queries off the request path.
// Implemented by rabbitmq.QueryLogPublisher.
type QueryLogPublisher interface {
	Publish(ctx context.Context, entry model.QueryLog) error
}

// RAGHandler serves the upload/chat/status/reset boundaries for the
// session resolved by the middleware.
type RAGHandler struct {
	cache          AnswerCache
	publisher      QueryLogPublisher
	uploadDir      string
	maxUploadBytes int64
}

type ChatRequest struct {
	Message string `json:"message"`
}

func NewRAGHandler(cache AnswerCache, publisher QueryLogPublisher, uploadDir string, maxUploadMB int) *RAGHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &RAGHandler{
		cache:          cache,
		publisher:      publisher,
		uploadDir:      uploadDir,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

func sessionFromContext(c *gin.Context) (string, *rag.Session, bool) {
	id, ok := c.Get(middleware.ContextSessionIDKey)
	if !ok {
		return "", nil, false
	}
	sess, ok := c.Get(middleware.ContextSessionKey)
	if !ok {
		return "", nil, false
	}
	ragSess, ok := sess.(*rag.Session)
	if !ok {
		return "", nil, false
	}
	return id.(string), ragSess, true
}

// Upload accepts one CSV file and initializes the session's RAG pipeline
// from it. Re-uploading replaces the previous index.
func (h *RAGHandler) Upload(c *gin.Context) {
	sessionID, sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "session missing from request context", "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided", "")
		return
	}
	if file.Filename == "" {
		response.Error(c, http.StatusBadRequest, "No file selected", "")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".csv" {
		response.Error(c, http.StatusBadRequest, "Invalid file type. Please upload a CSV file.", "")
		return
	}
	if file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, "File size exceeds maximum limit (10MB)", "")
		return
	}

	dir := filepath.Join(h.uploadDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), "Error processing upload: "+err.Error())
		return
	}
	path := filepath.Join(dir, sanitizeFilename(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), "Error processing upload: "+err.Error())
		return
	}

	result := sess.Initialize(c.Request.Context(), path)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	// A new knowledge base invalidates whatever was answered before.
	if h.cache != nil {
		_ = h.cache.Purge(c.Request.Context(), sessionID)
	}
	c.JSON(http.StatusOK, result)
}

// Chat answers one question against the session's knowledge base.
func (h *RAGHandler) Chat(c *gin.Context) {
	sessionID, sess, ok := sessionFromContext(c)
	if !ok {
		response.ChatError(c, http.StatusInternalServerError, "session missing from request context", "")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ChatError(c, http.StatusBadRequest, "No message provided", "")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		response.ChatError(c, http.StatusBadRequest, "Message cannot be empty", "")
		return
	}

	if !sess.Stats().Initialized {
		response.ChatError(c, http.StatusBadRequest,
			"RAG system not initialized",
			"Please upload a CSV file first to initialize the system.")
		return
	}

	if h.cache != nil {
		if answer, hit, err := h.cache.Get(c.Request.Context(), sessionID, message); err == nil && hit {
			c.JSON(http.StatusOK, rag.QueryResult{
				Success:  true,
				Response: answer,
				Question: message,
			})
			return
		}
	}

	result := sess.Query(c.Request.Context(), message)
	if result.Success {
		if h.cache != nil {
			_ = h.cache.Set(c.Request.Context(), sessionID, message, result.Response)
		}
		if h.publisher != nil {
			_ = h.publisher.Publish(c.Request.Context(), model.QueryLog{
				SessionToken: sessionID,
				Question:     message,
				Response:     result.Response,
			})
		}
	}
	// Downstream failures still answer 200 with a structured failure body;
	// the caller distinguishes by the success flag.
	c.JSON(http.StatusOK, result)
}

// Status returns the session's stats snapshot.
func (h *RAGHandler) Status(c *gin.Context) {
	_, sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "session missing from request context", "")
		return
	}
	response.OK(c, gin.H{"status": sess.Stats()})
}

// Reset clears the session's state, cached answers, and uploaded files.
func (h *RAGHandler) Reset(c *gin.Context) {
	sessionID, sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "session missing from request context", "")
		return
	}

	sess.Reset()
	if h.cache != nil {
		_ = h.cache.Purge(c.Request.Context(), sessionID)
	}
	if h.uploadDir != "" {
		_ = os.RemoveAll(filepath.Join(h.uploadDir, sessionID))
	}
	response.OK(c, gin.H{"message": "RAG system reset successfully"})
}

// sanitizeFilename strips directory components and characters that could
// escape the session's upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '\x00':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		name = "upload.csv"
	}
	return name
}
