package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDate("2024-03-05"))
	assert.Equal(t, "05/03/2024", FormatDate("2024-03-05T14:30:00"))
	assert.Equal(t, "05/03/2024", FormatDate("2024-03-05T14:30:00Z"))
	assert.Equal(t, "No disponible", FormatDate(""))
	assert.Equal(t, "Formato inválido", FormatDate("ayer"))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "05/03/2024 14:30", FormatDateTime("2024-03-05T14:30:00"))
	assert.Equal(t, "05/03/2024", FormatDateTime("2024-03-05"))
}

func TestDateInput(t *testing.T) {
	assert.Equal(t, "2024-03-05", DateInput("2024-03-05T14:30:00.123"))
	assert.Equal(t, "", DateInput("no"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(4, 4))
}
