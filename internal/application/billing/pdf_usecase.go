package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante (PDF) de una venta.
// Las ventas anuladas no tienen comprobante.
type PDFUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	generator  ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	generator ReceiptPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:   saleRepo,
		clientRepo: clientRepo,
		generator:  generator,
	}
}

// DownloadSalePDF recupera la venta con sus líneas y el cliente, y genera el comprobante.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrAlreadyAnnulled  si la venta está anulada.
func (uc *PDFUseCase) DownloadSalePDF(ctx context.Context, saleID int64) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if !sale.Estado {
		return nil, "", domain.ErrAlreadyAnnulled
	}

	client, err := uc.clientRepo.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, "", fmt.Errorf("pdf: cliente %d de la venta %d no existe", sale.ClientID, sale.ID)
	}

	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("venta_%06d.pdf", sale.ID)
	return pdfBytes, filename, nil
}
