// Package timeutil normaliza fechas entre la zona horaria del restaurante y UTC.
//
// Todo instante se persiste en UTC; los límites de "hoy", "este mes" y los
// buckets diarios de los reportes se calculan en la zona local del restaurante.
package timeutil

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata" // zonas IANA embebidas para contenedores sin tzdata
)

// DefaultZone zona usada cuando el restaurante no tiene una configurada.
const DefaultZone = "America/Bogota"

// DateLayout formato de fecha de calendario usado en query params y reportes.
const DateLayout = "2006-01-02"

// ErrInvalidDate fecha con formato distinto a YYYY-MM-DD.
var ErrInvalidDate = errors.New("fecha inválida, use YYYY-MM-DD")

// bogotaFixed Colombia no usa horario de verano: UTC-5 fijo.
var bogotaFixed = time.FixedZone(DefaultZone, -5*60*60)

// LoadLocation carga la zona indicada. Si el nombre es vacío o desconocido
// devuelve America/Bogota con offset fijo.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return bogotaFixed
	}
	return loc
}

// StartOfDay devuelve la medianoche local del día que contiene t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayRange devuelve [inicio, fin) del día local que contiene t, expresado en UTC.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// MonthRange devuelve [día 1 00:00, día 1 del mes siguiente) en hora local, expresado en UTC.
func MonthRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// ParseLocalDate interpreta YYYY-MM-DD como la medianoche local de ese día.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// LocalDateRange convierte un rango de fechas de calendario (ambas inclusive) al
// intervalo UTC [desde 00:00, hasta+1 00:00). Fechas vacías: mes en curso hasta hoy.
func LocalDateRange(desde, hasta string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if desde == "" {
		lt := now.In(loc)
		from = time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	} else if from, err = ParseLocalDate(desde, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if hasta == "" {
		to = StartOfDay(now, loc)
	} else if to, err = ParseLocalDate(hasta, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from.UTC(), to.AddDate(0, 0, 1).UTC(), nil
}

// DayKey devuelve la fecha de calendario local (YYYY-MM-DD) de un instante.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// DaysBetween lista las fechas locales desde from hasta to (inclusive en días de
// calendario). Si to es anterior a from devuelve nil.
func DaysBetween(from, to time.Time, loc *time.Location) []string {
	start := StartOfDay(from, loc)
	end := StartOfDay(to, loc)
	if end.Before(start) {
		return nil
	}
	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(DateLayout))
	}
	return keys
}

// CalendarDays cuenta los días de calendario locales entre from y to, ambos
// inclusive, sin construir la lista. Devuelve 0 si to es anterior a from.
// Rangos de más de ~290 años se saturan en el máximo de time.Duration.
func CalendarDays(from, to time.Time, loc *time.Location) int {
	a, b := from.In(loc), to.In(loc)
	start := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// ToUTC normaliza un instante antes de persistirlo; el cero queda intacto.
func ToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
