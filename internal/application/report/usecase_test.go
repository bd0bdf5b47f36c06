package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-historico-api/internal/application/dto"
	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-historico-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeMoveRepo struct {
	moves []*entity.StockMove
	err   error
}

func (f *fakeMoveRepo) ListDoneUntil(until time.Time, locationIDs []string) ([]*entity.StockMove, error) {
	return f.moves, f.err
}

type fakeLocationRepo struct {
	locations []*entity.Location
	err       error
}

func (f *fakeLocationRepo) ListByUsage(usages []string) ([]*entity.Location, error) {
	return f.locations, f.err
}

type fakeProductRepo struct {
	costs map[string]decimal.Decimal
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	c, ok := f.costs[id]
	if !ok {
		return nil, nil
	}
	return &entity.Product{ID: id, StandardCost: c}, nil
}

func (f *fakeProductRepo) StandardCost(productID string) (decimal.Decimal, error) {
	c, ok := f.costs[productID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return c, nil
}

type fakeReportRepo struct {
	rows       []*entity.ValuationRow
	failCreate error
}

func (f *fakeReportRepo) DeleteAll() error {
	f.rows = nil
	return nil
}

func (f *fakeReportRepo) CreateMany(rows []*entity.ValuationRow) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeReportRepo) ListLatestRun(limit, offset int) ([]*entity.ValuationRow, error) {
	if offset >= len(f.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

func (f *fakeReportRepo) Summary(overdueBefore time.Time) (*entity.ReportSummary, error) {
	s := &entity.ReportSummary{TotalQuantity: decimal.Zero, TotalValue: decimal.Zero}
	for _, r := range f.rows {
		s.TotalProducts++
		s.TotalQuantity = s.TotalQuantity.Add(r.Quantity)
		s.TotalValue = s.TotalValue.Add(r.TotalValue())
		if r.LastMoveDate.Before(overdueBefore) {
			s.OverdueProducts++
		}
	}
	return s, nil
}

// fakeTxRunner simula la semántica todo-o-nada: si fn falla, restaura el
// estado previo del repositorio.
type fakeTxRunner struct {
	repo *fakeReportRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(reportRepo repository.ReportRepository) error) error {
	snapshot := append([]*entity.ValuationRow(nil), f.repo.rows...)
	if err := fn(f.repo); err != nil {
		f.repo.rows = snapshot
		return err
	}
	return nil
}

type fakeRenderer struct {
	lastRows int
	data     []byte
	err      error
}

func (f *fakeRenderer) Render(rows []entity.ValuationRow) ([]byte, error) {
	f.lastRows = len(rows)
	return f.data, f.err
}

type fakePDFRenderer struct {
	fakeRenderer
}

func (f *fakePDFRenderer) Render(asOf time.Time, rows []entity.ValuationRow) ([]byte, error) {
	return f.fakeRenderer.Render(rows)
}

type fakeStore struct {
	name        string
	contentType string
	data        []byte
	err         error
}

func (f *fakeStore) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name = objectName
	f.contentType = contentType
	f.data = data
	return "https://adjuntos.local/" + objectName + "?download=true", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso con fixtures
// ──────────────────────────────────────────────────────────────────────────────

var corte = time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

type fixture struct {
	uc         *report.ReportUseCase
	moves      *fakeMoveRepo
	locations  *fakeLocationRepo
	reportRepo *fakeReportRepo
	xlsx       *fakeRenderer
	pdf        *fakePDFRenderer
	store      *fakeStore
}

func newFixture() *fixture {
	bodega := &entity.Location{ID: "LOC-1", Name: "Bodega", Usage: entity.LocationUsageInternal}
	f := &fixture{
		moves:      &fakeMoveRepo{},
		locations:  &fakeLocationRepo{locations: []*entity.Location{bodega}},
		reportRepo: &fakeReportRepo{},
		xlsx:       &fakeRenderer{data: []byte("xlsx")},
		pdf:        &fakePDFRenderer{fakeRenderer{data: []byte("pdf")}},
		store:      &fakeStore{},
	}
	products := &fakeProductRepo{costs: map[string]decimal.Decimal{
		"P1": decimal.NewFromFloat(5.0),
		"P2": decimal.NewFromFloat(2.0),
	}}
	f.uc = report.NewReportUseCase(
		&fakeTxRunner{repo: f.reportRepo},
		f.moves, f.locations, products, f.reportRepo,
		f.xlsx, f.pdf, f.store,
		logger.Nop(),
	)
	return f
}

func move(id, productID string, qty float64, date time.Time) *entity.StockMove {
	return &entity.StockMove{
		ID:              id,
		ProductID:       productID,
		ProductName:     "Producto " + productID,
		LocationSrcID:   "LOC-EXT",
		LocationDestID:  "LOC-1",
		Date:            date,
		State:           entity.MoveStateDone,
		Quantity:        decimal.NewFromFloat(qty),
		PickingTypeCode: entity.PickingTypeIncoming,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_PersisteUnaFilaPorMovimiento(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{
		move("M1", "P1", 10, corte.Add(-24*time.Hour)),
		move("M2", "P2", 4, corte.Add(-12*time.Hour)),
	}

	resp, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Rows)
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, f.reportRepo.rows, 2)

	first := f.reportRepo.rows[0]
	assert.Equal(t, resp.RunID, first.RunID)
	assert.Equal(t, 0, first.Seq)
	assert.Equal(t, entity.MoveTypeCompra, first.MoveType)
	assert.True(t, first.TotalValue().Equal(decimal.NewFromInt(50)))
}

func TestGenerate_ReemplazaCorridaAnterior(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{move("M1", "P1", 10, corte.Add(-time.Hour))}

	r1, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)
	r2, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)

	// Idempotente en contenido: mismas filas, nunca acumula entre corridas.
	assert.Equal(t, r1.Rows, r2.Rows)
	require.Len(t, f.reportRepo.rows, 1)
	assert.Equal(t, r2.RunID, f.reportRepo.rows[0].RunID)
}

func TestGenerate_SinMovimientosProduceReporteVacio(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)
	assert.Zero(t, resp.Rows)
	assert.Empty(t, f.reportRepo.rows)
}

// Si la inserción falla, el borrado no queda a medias: la corrida anterior sobrevive.
func TestGenerate_FallaDeInsercionNoDejaReporteVacio(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{move("M1", "P1", 10, corte.Add(-time.Hour))}
	_, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)
	previas := len(f.reportRepo.rows)

	f.reportRepo.failCreate = errors.New("disco lleno")
	_, err = f.uc.Generate(context.Background(), corte)
	require.Error(t, err)
	assert.Len(t, f.reportRepo.rows, previas, "la corrida anterior debe sobrevivir al rollback")
}

func TestGenerate_FallaDeUpstreamAborta(t *testing.T) {
	f := newFixture()
	f.locations.err = errors.New("catálogo caído")
	_, err := f.uc.Generate(context.Background(), corte)
	require.Error(t, err)
	assert.Empty(t, f.reportRepo.rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// View
// ──────────────────────────────────────────────────────────────────────────────

func TestView_AgrupaYDevuelveDescriptorTabular(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{
		move("M1", "P1", 3, corte.Add(-48*time.Hour)),
		move("M2", "P1", 7, corte.Add(-2*time.Hour)),
	}

	resp, err := f.uc.View(context.Background(), corte)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Len(t, resp.Columns, 9)
	assert.Equal(t, "Valorizado", resp.Columns[8])

	row := resp.Rows[0]
	assert.True(t, row.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, row.TotalValue.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, corte.Add(-2*time.Hour), row.LastMoveDate)

	// La vista también persiste la corrida para consultas posteriores.
	require.Len(t, f.reportRepo.rows, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

func TestExportXLSX_SubeAdjuntoSinPersistirFilas(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{
		move("M1", "P1", 3, corte.Add(-3*time.Hour)),
		move("M2", "P1", 7, corte.Add(-2*time.Hour)),
	}

	resp, err := f.uc.ExportXLSX(context.Background(), corte)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Inventario_2024-06-30.xlsx", resp.FileName)
	assert.Equal(t, report.XLSXContentType, resp.ContentType)
	assert.Contains(t, resp.URL, "download=true")
	assert.Equal(t, 1, resp.Rows, "dos movimientos al mismo destino se agrupan en una fila")

	assert.Equal(t, resp.FileName, f.store.name)
	assert.Equal(t, []byte("xlsx"), f.store.data)
	assert.Empty(t, f.reportRepo.rows, "export no debe tocar el almacén de filas")
}

func TestExportXLSX_SinMovimientosIgualExporta(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.ExportXLSX(context.Background(), corte)
	require.NoError(t, err)
	assert.Zero(t, resp.Rows)
	assert.Zero(t, f.xlsx.lastRows, "el renderer recibe cero filas y produce solo encabezados")
	assert.NotEmpty(t, resp.URL)
}

func TestExportXLSX_FallaDeSerializacionNoSube(t *testing.T) {
	f := newFixture()
	f.xlsx.err = errors.New("xlsx roto")
	_, err := f.uc.ExportXLSX(context.Background(), corte)
	require.Error(t, err)
	assert.Empty(t, f.store.name, "no debe crearse adjunto si la serialización falla")
}

func TestExportPDF_SubeAdjunto(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{move("M1", "P1", 3, corte.Add(-time.Hour))}

	resp, err := f.uc.ExportPDF(context.Background(), corte)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Inventario_2024-06-30.pdf", resp.FileName)
	assert.Equal(t, report.PDFContentType, resp.ContentType)
	assert.Equal(t, []byte("pdf"), f.store.data)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Summary / fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_DevuelveFilasPersistidas(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{move("M1", "P1", 10, corte.Add(-time.Hour))}
	_, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)

	rows, err := f.uc.List(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalValue.Equal(decimal.NewFromInt(50)))
}

func TestSummary_AgregaTotales(t *testing.T) {
	f := newFixture()
	f.moves.moves = []*entity.StockMove{
		move("M1", "P1", 10, corte.Add(-time.Hour)),
		move("M2", "P2", 5, corte.Add(-time.Hour)),
	}
	_, err := f.uc.Generate(context.Background(), corte)
	require.NoError(t, err)

	s, err := f.uc.Summary()
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.TotalProducts)
	assert.True(t, s.TotalQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(60))) // 10*5 + 5*2
}

func TestParseAsOfDate(t *testing.T) {
	d, err := report.ParseAsOfDate("2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, corte, d, "fecha sin hora se lleva al final del día")

	d, err = report.ParseAsOfDate("2024-06-30T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 30, 10, 30, 0, 0, time.UTC), d)

	d, err = report.ParseAsOfDate("")
	require.NoError(t, err)
	assert.False(t, d.Before(time.Now().UTC().Add(-24*time.Hour)), "vacío usa el día actual")

	_, err = report.ParseAsOfDate("30/06/2024")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
