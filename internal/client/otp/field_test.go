package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_TypeDigitByDigit(t *testing.T) {
	var f Field
	for i, d := range []string{"4", "0", "7", "1", "9", "3"} {
		require.NoError(t, f.Type(i, d))
	}

	assert.Equal(t, "407193", f.Value())
	assert.True(t, f.Complete())
	assert.Equal(t, Length-1, f.Focus(), "focus never moves past the last cell")
}

func TestField_TypeAdvancesFocus(t *testing.T) {
	var f Field
	require.NoError(t, f.Type(0, "1"))
	assert.Equal(t, 1, f.Focus())
	require.NoError(t, f.Type(3, "2"))
	assert.Equal(t, 4, f.Focus())
}

func TestField_TypeRejectsNonDigit(t *testing.T) {
	var f Field
	require.NoError(t, f.Type(2, "5"))

	assert.ErrorIs(t, f.Type(2, "x"), ErrNotDigit)
	assert.Equal(t, "", f.Cell(2))
	assert.Equal(t, 2, f.Focus())

	assert.ErrorIs(t, f.Type(2, "12"), ErrNotDigit)
	assert.ErrorIs(t, f.Type(6, "1"), ErrCellRange)
	assert.ErrorIs(t, f.Type(-1, "1"), ErrCellRange)
}

func TestField_Backspace(t *testing.T) {
	var f Field
	require.NoError(t, f.Type(0, "1"))
	require.NoError(t, f.Type(1, "2"))

	// cell 2 is empty: focus moves back
	require.NoError(t, f.Backspace(2))
	assert.Equal(t, 1, f.Focus())

	// cell 1 is filled: cleared in place
	require.NoError(t, f.Backspace(1))
	assert.Equal(t, "", f.Cell(1))
	assert.Equal(t, 1, f.Focus())

	// empty first cell: nowhere to go
	f.Reset()
	require.NoError(t, f.Backspace(0))
	assert.Equal(t, 0, f.Focus())

	assert.ErrorIs(t, f.Backspace(Length), ErrCellRange)
}

func TestField_PasteAmongJunk(t *testing.T) {
	var f Field
	n := f.Paste(" code: 12-34 56 !")

	assert.Equal(t, Length, n)
	for i := 0; i < Length; i++ {
		assert.NotEmpty(t, f.Cell(i), "cell %d", i)
	}
	assert.Equal(t, "123456", f.Value())
	assert.Equal(t, Length-1, f.Focus())
}

func TestField_PasteTruncatesAndPartial(t *testing.T) {
	var f Field
	assert.Equal(t, Length, f.Paste("9876543210"))
	assert.Equal(t, "987654", f.Value())

	f.Reset()
	assert.Equal(t, 3, f.Paste("a1b2c3"))
	assert.Equal(t, "123", f.Value())
	assert.Equal(t, 2, f.Focus())
	assert.False(t, f.Complete())

	f.Reset()
	assert.Equal(t, 0, f.Paste("no digits"))
	assert.Equal(t, 0, f.Focus())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"123456", nil},
		{"12345", ErrInvalidLength},
		{"1234567", ErrInvalidLength},
		{"", ErrInvalidLength},
		{"12a456", ErrNotDigit},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := Validate(tt.code)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
