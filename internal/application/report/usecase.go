package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/application/dto"
	"github.com/jhoicas/Inventario-historico-api/internal/domain"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/valuation"
	"github.com/jhoicas/Inventario-historico-api/pkg/logger"
)

// Columns son los encabezados del reporte, en el orden del archivo exportado.
var Columns = []string{
	"Producto",
	"Ubicación Origen",
	"Ubicación Destino",
	"Lote/Serie",
	"Fecha Último Movimiento",
	"Tipo Movimiento",
	"Cantidad",
	"Valor Unitario",
	"Valorizado",
}

// MIME types de los artefactos exportados.
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType  = "application/pdf"
)

// Las filas cuyo último movimiento supera esta antigüedad cuentan como
// vencidas en el resumen.
const overdueAfterDays = 30

// ReportUseCase orquesta una corrida de valorización: resuelve la fecha de
// corte, consulta el feed de movimientos, invoca el agregador y persiste las
// filas (generate/view) o las exporta como adjunto descargable (export).
type ReportUseCase struct {
	txRunner     TxRunner
	moveRepo     repository.StockMoveRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	reportRepo   repository.ReportRepository
	xlsx         XLSXRenderer
	pdf          PDFRenderer
	attachments  AttachmentStore
	log          *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	txRunner TxRunner,
	moveRepo repository.StockMoveRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
	xlsx XLSXRenderer,
	pdf PDFRenderer,
	attachments AttachmentStore,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		txRunner:     txRunner,
		moveRepo:     moveRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		reportRepo:   reportRepo,
		xlsx:         xlsx,
		pdf:          pdf,
		attachments:  attachments,
		log:          log,
	}
}

// ParseAsOfDate resuelve el parámetro de fecha de consulta. Vacío usa hoy.
// Una fecha sin hora se lleva al final del día para que los movimientos de
// ese día completo cuenten en el corte.
func ParseAsOfDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return endOfDay(now), nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return endOfDay(d), nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}

// gather es el paso común a las tres operaciones: ubicaciones válidas,
// movimientos hasta el corte y agregación.
func (uc *ReportUseCase) gather(asOf time.Time, mode valuation.Mode) (valuation.Result, error) {
	locations, err := uc.locationRepo.ListByUsage(entity.ValidLocationUsages)
	if err != nil {
		return valuation.Result{}, fmt.Errorf("consultar ubicaciones: %w", err)
	}
	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.ID)
	}

	moves, err := uc.moveRepo.ListDoneUntil(asOf, ids)
	if err != nil {
		return valuation.Result{}, fmt.Errorf("consultar movimientos: %w", err)
	}

	costOf := func(productID string) (decimal.Decimal, error) {
		return uc.productRepo.StandardCost(productID)
	}
	res, err := valuation.Aggregate(asOf, moves, locations, costOf, mode)
	if err != nil {
		return valuation.Result{}, err
	}
	if res.SkippedNoProduct > 0 {
		uc.log.Warn().
			Int("movimientos_omitidos", res.SkippedNoProduct).
			Time("fecha_corte", asOf).
			Msg("movimientos sin producto omitidos del reporte")
	}
	return res, nil
}

// persistRun reemplaza el reporte almacenado por las filas de esta corrida,
// en una sola transacción (borrado + inserción todo-o-nada).
func (uc *ReportUseCase) persistRun(ctx context.Context, runID string, rows []entity.ValuationRow) error {
	now := time.Now().UTC()
	persisted := make([]*entity.ValuationRow, len(rows))
	for i := range rows {
		r := rows[i]
		r.ID = uuid.New().String()
		r.RunID = runID
		r.Seq = i
		r.CreatedAt = now
		persisted[i] = &r
	}
	return uc.txRunner.Run(ctx, func(reportRepo repository.ReportRepository) error {
		if err := reportRepo.DeleteAll(); err != nil {
			return err
		}
		return reportRepo.CreateMany(persisted)
	})
}

// Generate corre el reporte en modo plano (una fila por movimiento elegible)
// y lo persiste reemplazando la corrida anterior.
func (uc *ReportUseCase) Generate(ctx context.Context, asOf time.Time) (*dto.GenerateReportResponse, error) {
	res, err := uc.gather(asOf, valuation.ModeFlat)
	if err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	if err := uc.persistRun(ctx, runID, res.Rows); err != nil {
		return nil, fmt.Errorf("persistir reporte: %w", err)
	}
	uc.log.Info().
		Str("run_id", runID).
		Time("fecha_corte", asOf).
		Int("filas", len(res.Rows)).
		Msg("reporte de valorización generado")
	return &dto.GenerateReportResponse{
		RunID:        runID,
		AsOfDate:     asOf,
		Rows:         len(res.Rows),
		SkippedMoves: res.SkippedNoProduct,
	}, nil
}

// View corre el reporte agrupado por (producto, ubicación destino), lo
// persiste reemplazando la corrida anterior y devuelve el descriptor tabular.
func (uc *ReportUseCase) View(ctx context.Context, asOf time.Time) (*dto.ReportViewResponse, error) {
	res, err := uc.gather(asOf, valuation.ModeGrouped)
	if err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	if err := uc.persistRun(ctx, runID, res.Rows); err != nil {
		return nil, fmt.Errorf("persistir reporte: %w", err)
	}

	out := make([]dto.ValuationRowDTO, len(res.Rows))
	for i := range res.Rows {
		out[i] = dto.FromValuationRow(&res.Rows[i])
	}
	return &dto.ReportViewResponse{
		RunID:    runID,
		AsOfDate: asOf,
		Columns:  Columns,
		Rows:     out,
		Total:    len(out),
	}, nil
}

// ExportXLSX corre el reporte agrupado sin persistir filas, lo serializa como
// libro XLSX y sube el adjunto; devuelve la referencia descargable.
// Sin movimientos elegibles igualmente produce un libro bien formado
// con solo encabezados.
func (uc *ReportUseCase) ExportXLSX(ctx context.Context, asOf time.Time) (*dto.ExportResponse, error) {
	res, err := uc.gather(asOf, valuation.ModeGrouped)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.Render(res.Rows)
	if err != nil {
		return nil, fmt.Errorf("serializar XLSX: %w", err)
	}
	name := fmt.Sprintf("Reporte_Inventario_%s.xlsx", asOf.Format("2006-01-02"))
	url, err := uc.attachments.Upload(ctx, name, XLSXContentType, data)
	if err != nil {
		return nil, fmt.Errorf("subir adjunto: %w", err)
	}
	uc.log.Info().
		Str("archivo", name).
		Int("filas", len(res.Rows)).
		Msg("reporte exportado a XLSX")
	return &dto.ExportResponse{
		FileName:    name,
		ContentType: XLSXContentType,
		URL:         url,
		AsOfDate:    asOf,
		Rows:        len(res.Rows),
	}, nil
}

// ExportPDF corre el reporte agrupado y lo entrega como PDF descargable.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, asOf time.Time) (*dto.ExportResponse, error) {
	res, err := uc.gather(asOf, valuation.ModeGrouped)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.Render(asOf, res.Rows)
	if err != nil {
		return nil, fmt.Errorf("serializar PDF: %w", err)
	}
	name := fmt.Sprintf("Reporte_Inventario_%s.pdf", asOf.Format("2006-01-02"))
	url, err := uc.attachments.Upload(ctx, name, PDFContentType, data)
	if err != nil {
		return nil, fmt.Errorf("subir adjunto: %w", err)
	}
	uc.log.Info().
		Str("archivo", name).
		Int("filas", len(res.Rows)).
		Msg("reporte exportado a PDF")
	return &dto.ExportResponse{
		FileName:    name,
		ContentType: PDFContentType,
		URL:         url,
		AsOfDate:    asOf,
		Rows:        len(res.Rows),
	}, nil
}

// List devuelve las filas persistidas de la última corrida (vista interactiva).
func (uc *ReportUseCase) List(page dto.PageRequest) ([]dto.ValuationRowDTO, error) {
	page.DefaultPage()
	rows, err := uc.reportRepo.ListLatestRun(page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("consultar reporte: %w", err)
	}
	out := make([]dto.ValuationRowDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.FromValuationRow(r)
	}
	return out, nil
}

// Summary agrega totales sobre la última corrida persistida.
func (uc *ReportUseCase) Summary() (*dto.SummaryResponse, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -overdueAfterDays)
	s, err := uc.reportRepo.Summary(cutoff)
	if err != nil {
		return nil, fmt.Errorf("resumen del reporte: %w", err)
	}
	return &dto.SummaryResponse{
		TotalProducts:   s.TotalProducts,
		TotalQuantity:   s.TotalQuantity,
		TotalValue:      s.TotalValue,
		OverdueProducts: s.OverdueProducts,
	}, nil
}
