package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/editor.html
var editorPage []byte

// Editor serves the embedded single-page editor.
func Editor(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", editorPage)
}
