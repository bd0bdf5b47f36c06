package report

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de reporte atado a esa tx. El borrado de corridas previas y la
// inserción de la nueva corrida son todo-o-nada: un observador nunca ve el
// estado intermedio sin filas.
type TxRunner interface {
	Run(ctx context.Context, fn func(reportRepo repository.ReportRepository) error) error
}

// XLSXRenderer serializa filas de valorización a un libro XLSX
// (hoja "Inventario", fila de encabezados + una fila por dato).
type XLSXRenderer interface {
	Render(rows []entity.ValuationRow) ([]byte, error)
}

// PDFRenderer serializa filas de valorización a la representación PDF del reporte.
type PDFRenderer interface {
	Render(asOf time.Time, rows []entity.ValuationRow) ([]byte, error)
}

// AttachmentStore guarda el artefacto exportado y devuelve una URL de
// descarga directa (prefirmada, con disposición attachment).
type AttachmentStore interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}
