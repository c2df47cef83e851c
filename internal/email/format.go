package email

import (
	"fmt"
	"time"
)

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// formatDay renders "lunes, 2 de febrero de 2026".
func formatDay(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// formatDateTime renders "lunes, 2 de febrero de 2026, 14:00".
func formatDateTime(t time.Time, loc *time.Location) string {
	return formatDay(t, loc) + ", " + t.In(loc).Format("15:04")
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%d minutos", int(d.Minutes()))
}
