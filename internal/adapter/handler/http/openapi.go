package http

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.json
var openAPIDoc []byte

func serveOpenAPI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/json", openAPIDoc)
}
