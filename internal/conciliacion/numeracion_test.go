package conciliacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiguienteNumero(t *testing.T) {
	casos := []struct {
		max      string
		esperado string
	}{
		{"", PrimerNumero},
		{"A01-0001", "A01-0002"},
		{"A01-0042", "A01-0043"},
		{"A01-0999", "A01-1000"},
		{"A01-9999", "A02-0001"}, // contador agotado: pasa a la serie siguiente
		{"B07-0123", "B07-0124"},
		{"basura", PrimerNumero},
		{"A1-0001", PrimerNumero}, // serie de un dígito no es un número válido
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, SiguienteNumero(c.max), "max=%q", c.max)
	}
}

func TestEsNumeroValido(t *testing.T) {
	assert.True(t, EsNumeroValido("A01-0001"))
	assert.True(t, EsNumeroValido("Z99-9999"))
	assert.False(t, EsNumeroValido(""))
	assert.False(t, EsNumeroValido("A01-001"))
	assert.False(t, EsNumeroValido("a01-0001"))
	assert.False(t, EsNumeroValido("A010001"))
	assert.False(t, EsNumeroValido("AA1-0001"))
}

func TestSiguienteNumero_EsSiempreValido(t *testing.T) {
	n := PrimerNumero
	for i := 0; i < 50; i++ {
		n = SiguienteNumero(n)
		assert.True(t, EsNumeroValido(n), "iteración %d produjo %q", i, n)
	}
}
