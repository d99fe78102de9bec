package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/postgrab/extract"
	"github.com/truemediaorg/postgrab/i18n"
	"github.com/truemediaorg/postgrab/model"
	"github.com/truemediaorg/postgrab/service"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type downloadRequest struct {
	Post model.Post `json:"post"`
}

type downloadOneRequest struct {
	Media model.Media `json:"media"`
	Index int         `json:"index"`
}

type downloadOneResponse struct {
	OK       bool   `json:"ok"`
	Filename string `json:"filename"`
	// Lets the client open the asset itself when saving failed
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

type Handler struct {
	pipeline *service.Pipeline
}

func NewHandler(pipeline *service.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// Analyze resolves the first URL found in the submitted text.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.pipeline.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		tr := h.translator(c)
		if errors.Is(err, extract.ErrNoURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": tr.T(i18n.KeyNoURL)})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "message": tr.T(i18n.KeyResolveFailed)})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DownloadAll runs a batch for the submitted post and answers once it ended.
func (h *Handler) DownloadAll(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// a started batch always runs to its last asset, even if the client hangs up
	batch, err := h.pipeline.DownloadAll(context.WithoutCancel(c.Request.Context()), req.Post)
	if errors.Is(err, service.ErrBatchRunning) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "message": h.translator(c).T(i18n.KeyBatchBusy)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *Handler) DownloadOne(c *gin.Context) {
	var req downloadOneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Media.URL == "" || req.Index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media url and a non-negative index are required"})
		return
	}

	outcome := h.pipeline.DownloadOne(context.WithoutCancel(c.Request.Context()), req.Media, req.Index)
	c.JSON(http.StatusOK, downloadOneResponse{
		OK:       outcome.Succeeded,
		Filename: outcome.Filename,
		URL:      outcome.URL,
		Error:    outcome.Error,
	})
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.pipeline.Status()})
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.pipeline.Settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.Redacted())
}

// PutSettings replaces the settings. Sending back the redacted token keeps
// the stored one.
func (h *Handler) PutSettings(c *gin.Context) {
	var req model.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Token == model.RedactedToken {
		current, err := h.pipeline.Settings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		req.Token = current.Token
	}

	saved, err := h.pipeline.SaveSettings(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved.Redacted())
}

func (h *Handler) Health(c *gin.Context) {
	health, ok := h.pipeline.Healthcheck(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

// translator speaks the language from the stored settings
func (h *Handler) translator(c *gin.Context) i18n.Translator {
	s, err := h.pipeline.Settings(c.Request.Context())
	if err != nil {
		log.Debugf("falling back to default language: %v", err)
		return i18n.For(model.DefaultLanguage)
	}
	return i18n.For(s.Language)
}
