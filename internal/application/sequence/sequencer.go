// Package sequence resuelve el consecutivo de documentos por (serie, tipo, año).
package sequence

import (
	"fmt"
	"time"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

// NextNumber resuelve la serie y devuelve el siguiente consecutivo junto con
// el año del contador. El año debe persistirse en el documento: el consecutivo
// reinicia en 1 cada año y la identidad completa es (serie, año, número).
// Si series está vacía se usa la ya configurada para (tipo, año); si tampoco
// existe, se deriva la serie por defecto del tipo de documento y queda
// configurada de ahí en adelante. Debe invocarse con el repositorio atado a la
// transacción del documento: si esta hace rollback el número queda como hueco
// aceptable y jamás se reutiliza.
func NextNumber(seqRepo repository.DocumentSequenceRepository, series string, docType entity.DocumentType, at time.Time) (string, int64, int, error) {
	year := at.Year()
	if series == "" {
		configured, err := seqRepo.FindSeries(docType, year)
		if err != nil {
			return "", 0, 0, fmt.Errorf("buscar serie configurada: %w", err)
		}
		if configured != "" {
			series = configured
		} else {
			series = docType.DefaultSeries()
		}
	}
	n, err := seqRepo.Next(series, docType, year)
	if err != nil {
		return "", 0, 0, fmt.Errorf("siguiente consecutivo %s/%s/%d: %w", series, docType, year, err)
	}
	return series, n, year, nil
}
