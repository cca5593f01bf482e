package hr

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/domain"
)

// Attendance states.
const (
	AsistenciaPresente = "Presente"
	AsistenciaAusente  = "Ausente"
	AsistenciaRetardo  = "Retardo"
	AsistenciaPermiso  = "Permiso"
)

// Attendance is one employee's record for one day. Entrada and Salida are
// clock times in "15:04" form, empty when not punched.
type Attendance struct {
	entity.Base

	EmpleadoID id.ID     `json:"empleadoId"`
	Fecha      time.Time `json:"fecha"`
	Entrada    string    `json:"entrada,omitempty"`
	Salida     string    `json:"salida,omitempty"`
	Estado     string    `json:"estado"`
	Notas      string    `json:"notas,omitempty"`
}

// ExportAttendanceCSV writes attendance as flat rows sorted by date then
// employee name, so the file is stable across exports.
func ExportAttendanceCSV(ctx context.Context, w io.Writer,
	employees *domain.Repository[*Employee], attendance *domain.Repository[*Attendance]) error {

	emps, err := employees.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[id.ID]string, len(emps))
	for _, e := range emps {
		names[e.ID] = e.Nombre
	}

	rows, err := attendance.List(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Fecha.Equal(rows[j].Fecha) {
			return rows[i].Fecha.Before(rows[j].Fecha)
		}
		return names[rows[i].EmpleadoID] < names[rows[j].EmpleadoID]
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"empleadoId", "empleado", "fecha", "entrada", "salida", "estado"}); err != nil {
		return apperror.NewStorage("write csv header", err)
	}
	for _, a := range rows {
		row := []string{
			a.EmpleadoID.String(),
			names[a.EmpleadoID],
			a.Fecha.Format("2006-01-02"),
			a.Entrada,
			a.Salida,
			a.Estado,
		}
		if err := cw.Write(row); err != nil {
			return apperror.NewStorage("write csv row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperror.NewStorage("flush csv", err)
	}
	return nil
}
