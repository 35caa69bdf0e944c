package receipt

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func testOrder() *models.Order {
	return &models.Order{
		OrderNo:      "a1b2c3d4",
		Date:         "2024-05-01",
		CustomerName: "Kamal Silva",
		PhoneNumber:  "712345678",
		Address:      "4 Lake Rd, Kandy",
		Qty500g:      2,
		Total:        decimal.NewFromInt(1000),
		Status:       models.OrderStatusPending,
	}
}

func testBusiness() Business {
	return Business{Name: "SMORE DESSERT BAR", Product: "Watalappam", WhatsApp: "0705081870", Email: "shop@example.com"}
}

func writeSolidPNG(t *testing.T, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRenderer_DrawCanvas(t *testing.T) {
	r, err := NewRenderer(Assets{}, testBusiness(), logger.NewNop())
	require.NoError(t, err)

	img, err := r.Draw(testOrder(), models.DefaultPriceList())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(Width-1, Height-1))

	// some ink lands in the header band where INVOICE is right-aligned
	inked := false
	for x := 400; x < rightEdge && !inked; x++ {
		for y := 25; y < 55; y++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked)
}

func TestRenderer_PastesLogo(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	assets := Assets{LogoPath: writeSolidPNG(t, red)}

	r, err := NewRenderer(assets, testBusiness(), logger.NewNop())
	require.NoError(t, err)

	img, err := r.Draw(testOrder(), models.DefaultPriceList())
	require.NoError(t, err)
	px := img.RGBAAt(margin+logoSize/2, margin+logoSize/2)
	assert.Greater(t, px.R, uint8(240))
	assert.Less(t, px.G, uint8(16))
}

func TestRenderer_SkipsMissingAssets(t *testing.T) {
	assets := Assets{
		LogoPath:     filepath.Join(t.TempDir(), "missing.jpg"),
		WhatsAppIcon: filepath.Join(t.TempDir(), "missing.png"),
	}

	r, err := NewRenderer(assets, testBusiness(), logger.NewNop())
	require.NoError(t, err)

	img, err := r.Draw(testOrder(), models.DefaultPriceList())
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(margin+logoSize/2, margin+logoSize/2))
}

func TestRenderer_Encode(t *testing.T) {
	r, err := NewRenderer(Assets{}, testBusiness(), logger.NewNop())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf, testOrder(), models.DefaultPriceList()))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, cfg.Width)
	assert.Equal(t, Height, cfg.Height)
}

func TestRenderer_PrintsBusinessName(t *testing.T) {
	band := func(b Business) int {
		r, err := NewRenderer(Assets{}, b, logger.NewNop())
		require.NoError(t, err)

		img, err := r.Draw(testOrder(), models.DefaultPriceList())
		require.NoError(t, err)

		inked := 0
		for x := 300; x < rightEdge; x++ {
			for y := 100; y < 120; y++ {
				if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
					inked++
				}
			}
		}
		return inked
	}

	named := testBusiness()
	unnamed := named
	unnamed.Name = ""

	assert.Greater(t, band(named), band(unnamed))
}

func TestRenderer_ConcurrentEncode(t *testing.T) {
	r, err := NewRenderer(Assets{}, testBusiness(), logger.NewNop())
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, r.Encode(&want, testOrder(), models.DefaultPriceList()))

	const workers = 8
	errs := make(chan error, workers*5)
	outputs := make(chan []byte, workers*5)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				var buf bytes.Buffer
				errs <- r.Encode(&buf, testOrder(), models.DefaultPriceList())
				outputs <- buf.Bytes()
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(outputs)

	for err := range errs {
		assert.NoError(t, err)
	}
	for out := range outputs {
		assert.Equal(t, want.Bytes(), out)
	}
}

func TestNewRenderer_BadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	_, err := NewRenderer(Assets{FontPath: path}, testBusiness(), logger.NewNop())
	assert.Error(t, err)

	_, err = NewRenderer(Assets{FontPath: filepath.Join(t.TempDir(), "nope.ttf")}, testBusiness(), logger.NewNop())
	assert.Error(t, err)
}
