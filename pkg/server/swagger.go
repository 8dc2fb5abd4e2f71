package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"devinfo/pkg/log"

	"github.com/labstack/echo/v4"
)

var (
	//go:embed web/swagger-ui.html
	swaggerUITemplate string
	//go:embed web/swagger.yml
	swaggerSpec []byte
)

func (srv *Server) serveSwaggerUI(ctx echo.Context) error {
	tmpl, err := template.New("swagger-ui").Parse(swaggerUITemplate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load template")
		return ctx.String(http.StatusInternalServerError, fmt.Sprintf("Failed to load template: %v", err))
	}

	data := struct {
		Title       string
		Version     string
		SwaggerPath string
	}{
		Title:       "devinfo API Documentation",
		Version:     srv.version,
		SwaggerPath: "/swagger.yml",
	}

	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	ctx.Response().WriteHeader(http.StatusOK)
	return tmpl.Execute(ctx.Response().Writer, data)
}

func (srv *Server) serveSwaggerSpec(ctx echo.Context) error {
	return ctx.Blob(http.StatusOK, "application/yaml", swaggerSpec)
}
