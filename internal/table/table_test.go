package table

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Strings(t *testing.T) {
	tbl := New("Sheet", []string{" Brand ", "Score"}, [][]string{
		{"Zara ", "10"},
		{"H&M"},
	})

	require.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.HasColumn("Brand"))

	brands, err := tbl.Strings("Brand")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zara", "H&M"}, brands)
}

func TestTable_Floats(t *testing.T) {
	tbl := New("Sheet", []string{"Year", "Value"}, [][]string{
		{"2020", "1.5"},
		{"2021", ""},
		{"2022"},
	})

	values, err := tbl.Floats("Value")
	require.NoError(t, err)
	assert.Equal(t, []NullFloat{Some(1.5), Null(), Null()}, values)
}

func TestTable_MissingColumn(t *testing.T) {
	tbl := New("Transparency_2025", []string{"Brand"}, nil)

	_, err := tbl.Floats("Transparency_Index_2025")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "Transparency_2025", colErr.Sheet)
	assert.Equal(t, "Transparency_Index_2025", colErr.Column)
	assert.Contains(t, err.Error(), "Transparency_Index_2025")
}

func TestTable_InvalidNumber(t *testing.T) {
	tbl := New("Sheet", []string{"Value"}, [][]string{{"1"}, {"n/a"}})

	_, err := tbl.Floats("Value")
	var valErr *ValueError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, 3, valErr.Row)
	assert.Equal(t, "n/a", valErr.Value)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestNullFloat_String(t *testing.T) {
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "-10.5", Some(-10.5).String())
}
