package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/xxxsen/draftpad/internal/pkg/errcode"
	"github.com/xxxsen/draftpad/internal/pkg/response"
	"github.com/xxxsen/draftpad/internal/service"
)

type DraftHandler struct {
	drafts *service.DraftService
}

func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

type saveRequest struct {
	// pointer so an absent field is distinguishable from an empty draft
	Content *string `json:"content"`
}

func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, draft)
}

func (h *DraftHandler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Content == nil {
		response.Error(c, errcode.ErrInvalid, "content required")
		return
	}
	rev, err := h.drafts.Save(c.Request.Context(), *req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	if rev == nil {
		response.Success(c, gin.H{"changed": false, "message": "No changes detected"})
		return
	}
	message := ""
	if len(rev.AddedWords) == 0 && len(rev.RemovedWords) == 0 {
		message = "Only whitespace or formatting changes"
	}
	response.Success(c, gin.H{"changed": true, "revision": rev, "message": message})
}

func (h *DraftHandler) Preview(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(draft.Content), &buf); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"html": buf.String()})
}
