package compose

import (
	"github.com/RonaldoHorta159/tramite-cli/internal/model"
)

// SeguimientoView builds the movement-history table for a fetched document.
func SeguimientoView(d *model.Documento) TableView {
	v := TableView{Columns: SeguimientoColumns()}
	if d == nil {
		return v
	}
	v.Rows = make([]Row, 0, len(d.Movimientos))
	for _, m := range d.Movimientos {
		v.Rows = append(v.Rows, SeguimientoRow(m))
	}
	return v
}
