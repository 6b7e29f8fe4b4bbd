package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Drafts    *DraftHandler
	Revisions *RevisionHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/editor", Editor)

	api.GET("/draft", deps.Drafts.Get)
	api.PUT("/draft", deps.Drafts.Save)
	api.GET("/draft/preview", deps.Drafts.Preview)

	api.GET("/revisions", deps.Revisions.List)
	api.GET("/revisions/:id", deps.Revisions.Get)
}
