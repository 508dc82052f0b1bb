package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lvxn0va/legal-ease-ai/internal/middleware"
	"github.com/lvxn0va/legal-ease-ai/internal/services"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

type UploadUrlBody struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

func (h *DocumentHandler) GetUploadUrl(c *gin.Context) {
	userID := middleware.GetUserID(c)

	body := &UploadUrlBody{}
	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.documentService.GetUploadUrl(c, userID, body.Filename, body.ContentType)
	if err != nil {
		statusCode := http.StatusInternalServerError
		message := "Failed to generate upload URL"

		if strings.Contains(err.Error(), "unsupported file type") {
			statusCode = http.StatusBadRequest
			message = err.Error()
		}

		c.JSON(statusCode, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type CreateDocumentBody struct {
	Filename         string `json:"filename" binding:"required"`
	OriginalFilename string `json:"original_filename" binding:"required"`
	FileSize         string `json:"file_size"`
	MimeType         string `json:"mime_type"`
	StorageKey       string `json:"storage_key" binding:"required"`
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID := middleware.GetUserID(c)

	body := &CreateDocumentBody{}
	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	doc, jobID, err := h.documentService.CreateDocument(c, userID, services.CreateDocumentRequest{
		Filename:         body.Filename,
		OriginalFilename: body.OriginalFilename,
		FileSize:         body.FileSize,
		MimeType:         body.MimeType,
		StorageKey:       body.StorageKey,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create document",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"document": doc,
		"job_id":   jobID,
	})
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID := middleware.GetUserID(c)

	docs, err := h.documentService.ListDocuments(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list documents",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"count":     len(docs),
	})
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	doc, err := h.documentService.GetDocument(c, id, userID)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get document",
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) GetDownloadUrl(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	url, err := h.documentService.GetDownloadUrl(c, id, userID)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate download URL",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"download_url": url,
	})
}

func (h *DocumentHandler) Reprocess(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	jobID, err := h.documentService.Reprocess(c, id, userID)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Document not found",
			})
			return
		}
		if strings.Contains(err.Error(), "already processing") {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Document is already processing",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to queue document for processing",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
	})
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	if err := h.documentService.DeleteDocument(c, id, userID); err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete document",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted",
	})
}
