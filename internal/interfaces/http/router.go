package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-historico-api/internal/application/auth"
	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *report.ReportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reporte de inventario valorizado (protegido)
	reports := protected.Group("/reports/inventory")
	reportHandler := NewReportHandler(deps.ReportUC)

	// Generar/exportar reemplaza o produce artefactos: admin y bodeguero.
	canGenerate := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	reports.Post("/generate", canGenerate, reportHandler.Generate)
	reports.Get("/export", canGenerate, reportHandler.ExportXLSX)
	reports.Get("/export-pdf", canGenerate, reportHandler.ExportPDF)
	// view también reemplaza la corrida persistida, por eso exige rol de escritura.
	reports.Get("/view", canGenerate, reportHandler.View)

	// Lectura: cualquier rol autenticado.
	canRead := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleConsulta)
	reports.Get("/rows", canRead, reportHandler.Rows)
	reports.Get("/summary", canRead, reportHandler.Summary)
}
