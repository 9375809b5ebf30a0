package statement

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
)

const (
	Scale = 2

	baseWidth   = 600.0
	margin      = 24.0
	titleTop    = 44.0
	tableTop    = 104.0
	rowHeight   = 32.0
	summaryGap  = 20.0
	summaryH    = 72.0
	bottomPad   = 24.0
	nameColMaxW = 300.0
)

// Column anchors, as x positions in base units, in display order: module,
// credits, coeff, grade.
var columnX = [4]float64{margin, 372, 452, 540}

type palette struct {
	background color.Color
	surface    color.Color
	text       color.Color
	muted      color.Color
	stroke     color.Color
	success    color.Color
	danger     color.Color
}

var (
	lightPalette = palette{
		background: color.White,
		surface:    color.NRGBA{0xf3, 0xf4, 0xf6, 0xff},
		text:       color.NRGBA{0x11, 0x18, 0x27, 0xff},
		muted:      color.NRGBA{0x6b, 0x72, 0x80, 0xff},
		stroke:     color.NRGBA{0xe5, 0xe7, 0xeb, 0xff},
		success:    color.NRGBA{0x16, 0xa3, 0x4a, 0xff},
		danger:     color.NRGBA{0xdc, 0x26, 0x26, 0xff},
	}
	darkPalette = palette{
		background: color.NRGBA{0x1f, 0x29, 0x37, 0xff},
		surface:    color.NRGBA{0x11, 0x18, 0x27, 0xff},
		text:       color.NRGBA{0xf9, 0xfa, 0xfb, 0xff},
		muted:      color.NRGBA{0x9c, 0xa3, 0xaf, 0xff},
		stroke:     color.NRGBA{0x37, 0x41, 0x51, 0xff},
		success:    color.NRGBA{0x4a, 0xde, 0x80, 0xff},
		danger:     color.NRGBA{0xf8, 0x71, 0x71, 0xff},
	}
)

func paletteFor(t state.Theme) palette {
	if t == state.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

type Options struct {
	// FontPath optionally replaces the built-in Go font. The Go font has no
	// Arabic glyphs, so Arabic labels are only used with a custom font.
	FontPath string
	CacheTTL time.Duration
	Log      *logger.Logger
}

type Renderer struct {
	catalog  *i18n.Catalog
	regular  *truetype.Font
	bold     *truetype.Font
	arabicOK bool
	cache    *gocache.Cache
	log      *logger.Logger
}

func NewRenderer(catalog *i18n.Catalog, opts Options) (*Renderer, error) {
	if catalog == nil {
		return nil, fmt.Errorf("i18n catalog required")
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("service", "StatementRenderer")

	r := &Renderer{catalog: catalog, log: log}
	if path := strings.TrimSpace(opts.FontPath); path != "" {
		f, err := loadFont(path)
		if err != nil {
			return nil, fmt.Errorf("could not load statement font: %w", err)
		}
		r.regular, r.bold, r.arabicOK = f, f, true
		log.Info("Loaded statement font", "font", path)
	} else {
		var err error
		if r.regular, err = truetype.Parse(goregular.TTF); err != nil {
			return nil, fmt.Errorf("failed to parse TTF: %w", err)
		}
		if r.bold, err = truetype.Parse(gobold.TTF); err != nil {
			return nil, fmt.Errorf("failed to parse TTF: %w", err)
		}
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	r.cache = gocache.New(ttl, 2*ttl)
	return r, nil
}

func loadFont(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return f, nil
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size * Scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Size returns the pixel dimensions of the image for n modules.
func Size(n int) (w, h int) {
	height := tableTop + float64(n+1)*rowHeight + summaryGap + summaryH + bottomPad
	return int(baseWidth * Scale), int(height * Scale)
}

// Render draws s and returns PNG bytes. Identical statements are served from
// the cache.
func (r *Renderer) Render(s Statement) ([]byte, error) {
	if len(s.Modules) == 0 {
		return nil, ErrNoStatementData
	}
	key, err := cacheKey(s)
	if err != nil {
		return nil, err
	}
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	out, err := r.draw(s)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, out)
	r.log.Debug("statement rendered", "modules", len(s.Modules), "bytes", len(out))
	return out, nil
}

func cacheKey(s Statement) (string, error) {
	s.Date = s.Date.UTC().Truncate(24 * time.Hour)
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// labelLanguage falls back to English when the loaded font cannot draw
// Arabic.
func (r *Renderer) labelLanguage(l i18n.Language) i18n.Language {
	if l == i18n.Arabic && !r.arabicOK {
		return i18n.English
	}
	if !l.Valid() {
		return i18n.English
	}
	return l
}

func px(v float64) float64 { return v * Scale }

func (r *Renderer) draw(s Statement) ([]byte, error) {
	lang := r.labelLanguage(s.Language)
	t := func(key string) string { return r.catalog.T(lang, key) }
	pal := paletteFor(s.Theme)

	w, h := Size(len(s.Modules))
	dc := gg.NewContext(w, h)
	dc.SetColor(pal.background)
	dc.Clear()

	titleFace := face(r.bold, 20)
	headFace := face(r.bold, 13)
	bodyFace := face(r.regular, 13)
	smallFace := face(r.regular, 11)

	dc.SetFontFace(titleFace)
	dc.SetColor(pal.text)
	dc.DrawString(t("statement_title"), px(margin), px(titleTop))
	dc.SetFontFace(smallFace)
	dc.SetColor(pal.muted)
	dc.DrawString(s.Date.UTC().Format("2006-01-02"), px(margin), px(titleTop+22))

	// header band
	dc.SetColor(pal.surface)
	dc.DrawRoundedRectangle(px(margin-8), px(tableTop), px(baseWidth-2*(margin-8)), px(rowHeight), px(4))
	dc.Fill()
	dc.SetFontFace(headFace)
	dc.SetColor(pal.text)
	headers := [4]string{t("module_th"), t("credits_th"), t("coeff_th"), t("grade_th")}
	for i, label := range headers {
		drawCell(dc, label, i, tableTop)
	}

	for i, m := range s.Modules {
		top := tableTop + float64(i+1)*rowHeight
		if i > 0 {
			dc.SetColor(pal.stroke)
			dc.SetLineWidth(px(1))
			dc.DrawLine(px(margin-8), px(top), px(baseWidth-margin+8), px(top))
			dc.Stroke()
		}
		dc.SetFontFace(headFace)
		dc.SetColor(pal.text)
		drawCell(dc, ellipsize(dc, m.Name, px(nameColMaxW)), 0, top)
		dc.SetFontFace(bodyFace)
		drawCell(dc, formatNumber(m.Credits), 1, top)
		drawCell(dc, formatNumber(m.Coeff), 2, top)
		dc.SetFontFace(headFace)
		dc.SetColor(gradeColor(pal, m.Grade))
		drawCell(dc, fmt.Sprintf("%.2f", m.Grade), 3, top)
	}

	summaryTop := tableTop + float64(len(s.Modules)+1)*rowHeight + summaryGap
	dc.SetColor(pal.surface)
	dc.DrawRoundedRectangle(px(margin-8), px(summaryTop), px(baseWidth-2*(margin-8)), px(summaryH), px(4))
	dc.Fill()

	third := (baseWidth - 2*margin) / 3
	items := []struct {
		label string
		value string
		col   color.Color
	}{
		{t("semester_gpa_summary"), fmt.Sprintf("%.2f", s.Result.Average), gradeColor(pal, s.Result.Average)},
		{t("earned_credits_summary"), formatNumber(s.Result.Credits) + " / 30", pal.text},
		{t("remark_summary"), t(s.Result.RemarkKey), pal.text},
	}
	for i, it := range items {
		cx := margin + third*float64(i) + third/2
		dc.SetFontFace(smallFace)
		dc.SetColor(pal.muted)
		dc.DrawStringAnchored(strings.ToUpper(it.label), px(cx), px(summaryTop+24), 0.5, 0.5)
		dc.SetFontFace(titleFace)
		dc.SetColor(it.col)
		dc.DrawStringAnchored(it.value, px(cx), px(summaryTop+50), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCell writes text in column col of the row starting at top. The module
// column is left aligned, the others centred on their anchor.
func drawCell(dc *gg.Context, text string, col int, top float64) {
	y := px(top + rowHeight/2)
	if col == 0 {
		dc.DrawStringAnchored(text, px(columnX[0]), y, 0, 0.5)
		return
	}
	dc.DrawStringAnchored(text, px(columnX[col]), y, 0.5, 0.5)
}

func gradeColor(p palette, v float64) color.Color {
	if v >= 10 {
		return p.success
	}
	return p.danger
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ellipsize(dc *gg.Context, s string, maxW float64) string {
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "…"
		if w, _ := dc.MeasureString(candidate); w <= maxW {
			return candidate
		}
	}
	return "…"
}
