// Package receipt draws the printable invoice image for an order.
package receipt

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// Canvas and layout measurements in pixels
const (
	Width  = 600
	Height = 900

	margin      = 20
	rightEdge   = 580
	detailsTop  = 140
	lineStep    = 35
	totalValueX = 400
	iconSize    = 40
	logoSize    = 100
	contactX    = 70

	titleSize   = 30
	contentSize = 20
	smallSize   = 16
)

var columnWidths = [4]int{250, 70, 100, 100}

// Assets are optional images and the font drawn on every receipt.
// Empty paths are skipped.
type Assets struct {
	LogoPath     string
	WhatsAppIcon string
	EmailIcon    string
	FontPath     string
}

// Business is the seller information printed in the header and footer
type Business struct {
	Name     string
	Product  string
	WhatsApp string
	Email    string
}

// Renderer draws receipts. Font faces carry glyph caches, so each draw
// builds its own and a Renderer may be shared between goroutines.
type Renderer struct {
	assets   Assets
	business Business
	logger   logger.Logger
	font     *opentype.Font
}

// faces are the three text sizes used on one receipt
type faces struct {
	title   font.Face
	content font.Face
	small   font.Face
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.content, f.small} {
		if face != nil {
			face.Close()
		}
	}
}

// NewRenderer loads the receipt font. FontPath may point at a TTF or OTF
// file; the Go regular font is used when it is empty.
func NewRenderer(assets Assets, business Business, logger logger.Logger) (*Renderer, error) {
	data := goregular.TTF

	if assets.FontPath != "" {
		raw, err := os.ReadFile(assets.FontPath)

		if err != nil {
			return nil, fmt.Errorf("failed to read receipt font: %w", err)
		}

		data = raw
	}

	f, err := opentype.Parse(data)

	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt font: %w", err)
	}

	r := &Renderer{assets: assets, business: business, logger: logger, font: f}

	ff, err := r.newFaces()

	if err != nil {
		return nil, err
	}
	ff.Close()

	return r, nil
}

func (r *Renderer) newFaces() (*faces, error) {
	ff := &faces{}

	for _, face := range []struct {
		dst  *font.Face
		size float64
	}{
		{&ff.title, titleSize},
		{&ff.content, contentSize},
		{&ff.small, smallSize},
	} {
		var err error
		*face.dst, err = opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    face.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})

		if err != nil {
			ff.Close()
			return nil, fmt.Errorf("failed to build %vpt face: %w", face.size, err)
		}
	}

	return ff, nil
}

// Draw lays out the receipt for order. Line prices come from prices; the
// amount due is the total stored on the order.
func (r *Renderer) Draw(order *models.Order, prices *models.PriceList) (*image.RGBA, error) {
	ff, err := r.newFaces()

	if err != nil {
		return nil, err
	}
	defer ff.Close()

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r.paste(img, r.assets.LogoPath, image.Rect(margin, margin, margin+logoSize, margin+logoSize))

	r.textRight(img, ff.title, rightEdge, 40, "INVOICE")
	r.textRight(img, ff.content, rightEdge, 80, "Date: "+order.Date)
	r.textRight(img, ff.small, rightEdge, 110, r.business.Name)

	y := detailsTop
	details := []string{
		"Order No: " + order.OrderNo,
		"Customer Name: " + order.CustomerName,
		"Phone Number: " + order.DisplayPhone(),
		"Address: " + order.Address,
		"",
		"Items Ordered:",
	}

	for _, line := range details {
		r.text(img, ff.content, margin, y, line)
		y += lineStep
	}

	x := margin
	for i, header := range []string{"Item", "Qty", "Price", "Total"} {
		r.text(img, ff.content, x, y, header)
		x += columnWidths[i]
	}
	y += lineStep

	for _, item := range order.LineItems(prices) {
		cells := []string{
			fmt.Sprintf("%s %s", item.Size, r.business.Product),
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.Amount.StringFixed(2),
		}

		x = margin
		for i, cell := range cells {
			r.text(img, ff.small, x, y, cell)
			x += columnWidths[i]
		}
		y += lineStep
	}

	y += 20
	r.text(img, ff.content, margin, y, "Total Amount:")
	r.text(img, ff.content, totalValueX, y, order.Total.StringFixed(2))

	y += 50
	r.text(img, ff.title, margin, y, "Thank you for your order!")

	y += 60
	r.paste(img, r.assets.WhatsAppIcon, image.Rect(margin, y, margin+iconSize, y+iconSize))
	r.text(img, ff.small, contactX, y+5, "WhatsApp - "+r.business.WhatsApp)

	r.paste(img, r.assets.EmailIcon, image.Rect(margin, y+50, margin+iconSize, y+50+iconSize))
	r.text(img, ff.small, contactX, y+55, "Email - "+r.business.Email)

	return img, nil
}

// Encode draws the receipt and writes it to w as PNG
func (r *Renderer) Encode(w io.Writer, order *models.Order, prices *models.PriceList) error {
	img, err := r.Draw(order, prices)

	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// text draws s with its top-left corner at (x, top)
func (r *Renderer) text(dst draw.Image, face font.Face, x, top int, s string) {
	if s == "" {
		return
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// textRight draws s so that it ends at x and is vertically centred on middle
func (r *Renderer) textRight(dst draw.Image, face font.Face, x, middle int, s string) {
	if s == "" {
		return
	}

	m := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	baseline := middle + (m.Ascent.Ceil()-m.Descent.Ceil())/2

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x-width, baseline),
	}
	d.DrawString(s)
}

// paste scales the image at path into rect, keeping its transparency.
// Unreadable images are logged and left out.
func (r *Renderer) paste(dst draw.Image, path string, rect image.Rectangle) {
	if path == "" {
		return
	}

	src, err := loadImage(path)

	if err != nil {
		r.logger.Warn("Skipping receipt image", "path", path, "error", err)
		return
	}

	draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return img, nil
}
