package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", BRL(1234.56))
	assert.Equal(t, "R$ 0,00", BRL(0))
	assert.Equal(t, "R$ 1.250.000,00", BRL(1250000))
	assert.Equal(t, "R$ 10,50", BRL(10.5))
}
