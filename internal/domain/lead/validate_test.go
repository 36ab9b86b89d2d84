package lead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guarani-living/leads-api/internal/domain/lead"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, lead.ValidEmail("a@b.co"))
	assert.True(t, lead.ValidEmail("juan.perez@ejemplo.com.py"))

	assert.False(t, lead.ValidEmail("a@b"), "falta el punto del dominio")
	assert.False(t, lead.ValidEmail("ab.com"), "falta la arroba")
	assert.False(t, lead.ValidEmail("@b.com"), "falta la parte local")
	assert.False(t, lead.ValidEmail("a b@c.com"), "no admite espacios")
}

func TestValidPhone(t *testing.T) {
	assert.True(t, lead.ValidPhone("+595 991 899050"))
	assert.True(t, lead.ValidPhone("(021) 123-456"))

	assert.False(t, lead.ValidPhone("llamame"), "letras no son un teléfono")
	assert.False(t, lead.ValidPhone(""), "vacío no valida")
}
