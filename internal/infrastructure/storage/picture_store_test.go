package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG 生成一张纯色PNG
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveResizesToFixedSize(t *testing.T) {
	store := NewLocalPictureStore(t.TempDir())

	path, err := store.Save(testPNG(t, 640, 480))
	require.NoError(t, err)
	require.FileExists(t, path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	saved, err := jpeg.Decode(file)
	require.NoError(t, err, "落盘格式应为JPEG")
	assert.Equal(t, 200, saved.Bounds().Dx())
	assert.Equal(t, 200, saved.Bounds().Dy())
}

func TestSaveRejectsInvalidImage(t *testing.T) {
	store := NewLocalPictureStore(t.TempDir())

	_, err := store.Save([]byte("definitely not an image"))
	assert.True(t, code.Is(err, code.ErrPictureInvalid))
}

func TestLoadRoundTrip(t *testing.T) {
	store := NewLocalPictureStore(t.TempDir())

	path, err := store.Save(testPNG(t, 100, 100))
	require.NoError(t, err)

	data, err := store.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLoadMissing(t *testing.T) {
	store := NewLocalPictureStore(t.TempDir())

	_, err := store.Load("")
	assert.True(t, code.Is(err, code.ErrPictureNotFound))

	_, err = store.Load(t.TempDir() + "/missing.jpeg")
	assert.True(t, code.Is(err, code.ErrPictureNotFound))
}

func TestDeleteTolerant(t *testing.T) {
	store := NewLocalPictureStore(t.TempDir())

	path, err := store.Save(testPNG(t, 100, 100))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	assert.NoFileExists(t, path)

	// 重复删除和空路径都不报错
	assert.NoError(t, store.Delete(path))
	assert.NoError(t, store.Delete(""))
}
