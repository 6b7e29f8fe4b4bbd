package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/draftpad/internal/pkg/response"
	"github.com/xxxsen/draftpad/internal/service"
)

type RevisionHandler struct {
	drafts *service.DraftService
}

func NewRevisionHandler(drafts *service.DraftService) *RevisionHandler {
	return &RevisionHandler{drafts: drafts}
}

func (h *RevisionHandler) List(c *gin.Context) {
	revisions, err := h.drafts.ListRevisions(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, revisions)
}

func (h *RevisionHandler) Get(c *gin.Context) {
	rev, err := h.drafts.GetRevision(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rev)
}
