package lifecycle

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// Ventanas de SLA fijas por familia de servicio (no dependen de CompanySettings.SLAHours).
const (
	RoadsideSLA = 2 * time.Hour
	StandardSLA = 24 * time.Hour
)

const orderNumberWidth = 6

// DerivePriority media por defecto; la familia sos_* siempre es urgente.
func DerivePriority(st entity.ServiceType, requested entity.Priority) entity.Priority {
	if st.IsRoadside() {
		return entity.PriorityUrgente
	}
	if requested == "" {
		return entity.PriorityMedia
	}
	return requested
}

// SLADeadline calcula el vencimiento a partir del instante de creación.
func SLADeadline(st entity.ServiceType, createdAt time.Time) time.Time {
	if st.IsRoadside() {
		return createdAt.Add(RoadsideSLA)
	}
	return createdAt.Add(StandardSLA)
}

// MapsLink enlace determinista a Google Maps; vacío si no hay coordenadas.
func MapsLink(c *entity.Coordinates) string {
	if c == nil {
		return ""
	}
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// FormatOrderNumber OS- seguido del consecutivo con 6 dígitos (OS-000001).
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("OS-%0*d", orderNumberWidth, seq)
}

// IsOverdue derivado en cada lectura: vencido y no terminal.
func IsOverdue(o *entity.ServiceOrder, now time.Time) bool {
	return o.SLADeadline.Before(now) && !o.Status.IsTerminal()
}
