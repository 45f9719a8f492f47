package processing

import (
	"testing"

	"hsv-masker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeBackend(t *testing.T) {
	var backend Backend = NewNative()
	assert.Equal(t, BackendNative, backend.Name())

	img, err := models.NewImage(4, 2)
	require.NoError(t, err)
	// Teal in B,G,R order.
	img.Fill(128, 128, 64)

	hsv, err := backend.ToHSV(img)
	require.NoError(t, err)
	assert.Equal(t, models.HSV{H: 90, S: 128, V: 128}, hsv.At(3, 1))

	small, err := backend.Resize(img, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, small.Width)
	assert.Equal(t, 1, small.Height)
	b, g, r := small.BGRAt(1, 0)
	assert.Equal(t, [3]uint8{128, 128, 64}, [3]uint8{b, g, r})
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("native"))
	assert.NoError(t, ValidateName("opencv"))
	assert.Error(t, ValidateName("cuda"))
	assert.Error(t, ValidateName(""))
}
