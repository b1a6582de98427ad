package conciliacion

import (
	"fmt"
	"regexp"
	"strconv"
)

// PrimerNumero is the first order number of a fresh installation.
const PrimerNumero = "A01-0001"

// numeroOrdenRe matches the human-readable order number format:
// letter prefix, two-digit series, dash, four-digit counter.
var numeroOrdenRe = regexp.MustCompile(`^([A-Z])(\d{2})-(\d{4})$`)

// EsNumeroValido reports whether s matches the A01-0001 format.
func EsNumeroValido(s string) bool { return numeroOrdenRe.MatchString(s) }

// SiguienteNumero derives the next sequential order number from the highest
// existing one: the four-digit counter is incremented and re-zero-padded.
// An empty or unparseable max starts the sequence at PrimerNumero.
//
// The find-max-then-increment approach assumes one writer at a time; the
// caller runs it inside the order-creation transaction.
func SiguienteNumero(max string) string {
	m := numeroOrdenRe.FindStringSubmatch(max)
	if m == nil {
		return PrimerNumero
	}
	contador, _ := strconv.Atoi(m[3])
	if contador >= 9999 {
		// Counter exhausted: roll over to the next series.
		serie, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s%02d-0001", m[1], serie+1)
	}
	return fmt.Sprintf("%s%s-%04d", m[1], m[2], contador+1)
}
