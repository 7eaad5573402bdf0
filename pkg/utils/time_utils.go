// utils/timeutil.go
package utils

import (
	"fmt"
	"time"
)

// Brazil time location (BRT, -03:00)
var brLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*3600)
}()

// Unix seconds, the unit every timestamp column uses.
func NowUnixSeconds() int64 { return time.Now().Unix() }

var monthsBR = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// FormatDateBR renders t as "5 de mar. de 2025" in Brazil time.
// Returns "" for the zero time.
func FormatDateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(brLoc)
	return fmt.Sprintf("%d de %s. de %d", t.Day(), monthsBR[t.Month()-1], t.Year())
}
