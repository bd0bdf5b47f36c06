package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-historico-api/internal/application/dto"
	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain"
)

// ReportHandler maneja las operaciones del reporte de inventario valorizado.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler del reporte.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar el reporte de inventario valorizado
// @Description  Corre la valorización a la fecha de corte y reemplaza la corrida anterior.
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "Fecha de corte (YYYY-MM-DD o RFC3339). Vacío = hoy."
// @Success      200   {object}  dto.GenerateReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	asOf, err := report.ParseAsOfDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida: use YYYY-MM-DD o RFC3339"})
	}
	out, err := h.uc.Generate(c.UserContext(), asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// View godoc
// @Summary      Vista agrupada del reporte
// @Description  Corre la valorización agrupada por producto y ubicación destino y devuelve la tabla.
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "Fecha de corte (YYYY-MM-DD o RFC3339). Vacío = hoy."
// @Success      200   {object}  dto.ReportViewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/view [get]
func (h *ReportHandler) View(c *fiber.Ctx) error {
	asOf, err := report.ParseAsOfDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida: use YYYY-MM-DD o RFC3339"})
	}
	out, err := h.uc.View(c.UserContext(), asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar el reporte a XLSX
// @Description  Genera el libro "Inventario" y devuelve una URL de descarga directa.
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "Fecha de corte (YYYY-MM-DD o RFC3339). Vacío = hoy."
// @Success      200   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/export [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	asOf, err := report.ParseAsOfDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida: use YYYY-MM-DD o RFC3339"})
	}
	out, err := h.uc.ExportXLSX(c.UserContext(), asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar el reporte a PDF
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "Fecha de corte (YYYY-MM-DD o RFC3339). Vacío = hoy."
// @Success      200   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/export-pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	asOf, err := report.ParseAsOfDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida: use YYYY-MM-DD o RFC3339"})
	}
	out, err := h.uc.ExportPDF(c.UserContext(), asOf)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Rows godoc
// @Summary      Filas persistidas de la última corrida
// @Tags         reports
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 100)"
// @Param        offset  query  int  false  "Desplazamiento (default 0)"
// @Success      200   {array}  dto.ValuationRowDTO
// @Security     BearerAuth
// @Router       /api/reports/inventory/rows [get]
func (h *ReportHandler) Rows(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de la última corrida
// @Description  Totales de productos, cantidad y valorizado, más filas vencidas por antigüedad.
// @Tags         reports
// @Produce      json
// @Success      200   {object}  dto.SummaryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		if errors.Is(err, domain.ErrNoReportRun) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_REPORT", Message: "no hay corridas del reporte"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
