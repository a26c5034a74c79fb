// Package spec normalizes a caller's partial prompt request into a
// canonical, fully-defaulted InputSpec.
//
// Normalize is a pure function: every optional field gets a canonical
// default, every numeric field is clamped into its documented range, and
// only structurally invalid values (an unrecognized kind literal, a
// malformed color, an unsupported format or MIME type) are rejected with
// a ValidationError naming the field.
package spec

import (
	"fmt"
	"strings"

	"github.com/swairshah/InputMCP/types"
)

// Canonical defaults. Every InputSpec field has one.
const (
	DefaultMessage     = "Please provide input"
	DefaultSubmitLabel = "Submit"
	DefaultLines       = 3
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultMimeType    = "image/png"
	DefaultBackground  = "#ffffff"
	DefaultGridWidth   = 16
	DefaultGridHeight  = 16
	DefaultCellSize    = 16
)

// DefaultPalette is the canonical non-empty pixel art palette: the classic
// 16-color set, ordered.
func DefaultPalette() []string {
	return []string{
		"#000000", "#ffffff", "#7f7f7f", "#c3c3c3",
		"#880015", "#ed1c24", "#ff7f27", "#fff200",
		"#22b14c", "#00a2e8", "#3f48cc", "#a349a4",
		"#b97a57", "#ffaec9", "#ffc90e", "#b5e61d",
	}
}

// exportMimeTypes are the media types the grid exporter can encode.
// webp is recognized on the initial-image input side only; there is no
// maintained encoder for it.
var exportMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
}

// Normalize validates and defaults a partial request into an InputSpec.
// A nil request yields the default text spec. Normalize is idempotent:
// feeding a normalized spec's fields back through yields the same spec.
func Normalize(req *types.Request) (*types.InputSpec, error) {
	if req == nil {
		req = &types.Request{}
	}

	kind, err := normalizeKind(req.Kind)
	if err != nil {
		return nil, err
	}

	out := &types.InputSpec{
		Kind:        kind,
		Message:     stringOr(req.Message, DefaultMessage),
		SubmitLabel: stringOr(req.SubmitLabel, DefaultSubmitLabel),
	}

	switch kind {
	case types.KindText:
		if err := normalizeText(req, out); err != nil {
			return nil, err
		}
	case types.KindImage:
		if err := normalizeImage(req, out); err != nil {
			return nil, err
		}
	case types.KindPixelArt:
		if err := normalizePixelArt(req, out); err != nil {
			return nil, err
		}
	}

	if req.InitialImage != nil && *req.InitialImage != "" {
		if kind == types.KindText {
			return nil, invalidField("initialImage", *req.InitialImage, "only valid for image and pixelart kinds")
		}
		// Carried through verbatim; imageref.Resolve turns paths into
		// data URLs before the spec reaches the launcher.
		out.InitialImage = *req.InitialImage
	}

	return out, nil
}

func normalizeKind(raw string) (types.Kind, error) {
	switch types.Kind(raw) {
	case "":
		return types.KindText, nil
	case types.KindText, types.KindImage, types.KindPixelArt:
		return types.Kind(raw), nil
	default:
		return "", invalidField("kind", raw, "must be one of text, image, pixelart")
	}
}

func normalizeText(req *types.Request, out *types.InputSpec) error {
	out.Placeholder = stringOr(req.Placeholder, "")
	out.Lines = clamp(intOr(req.Lines, DefaultLines), types.MinLines, types.MaxLines)

	format := stringOr(req.Format, string(types.FormatText))
	switch types.TextFormat(format) {
	case types.FormatText, types.FormatJSON:
		out.Format = types.TextFormat(format)
	default:
		return invalidField("format", format, "must be text or json")
	}
	return nil
}

func normalizeImage(req *types.Request, out *types.InputSpec) error {
	out.Width = clamp(intOr(req.Width, DefaultWidth), types.MinImageDim, types.MaxImageDim)
	out.Height = clamp(intOr(req.Height, DefaultHeight), types.MinImageDim, types.MaxImageDim)

	mime, err := normalizeMimeType(stringOr(req.MimeType, DefaultMimeType))
	if err != nil {
		return err
	}
	out.MimeType = mime

	bg, err := normalizeColor("backgroundColor", stringOr(req.BackgroundColor, DefaultBackground))
	if err != nil {
		return err
	}
	out.BackgroundColor = bg
	return nil
}

func normalizePixelArt(req *types.Request, out *types.InputSpec) error {
	out.GridWidth = clamp(intOr(req.GridWidth, DefaultGridWidth), types.MinGridDim, types.MaxGridDim)
	out.GridHeight = clamp(intOr(req.GridHeight, DefaultGridHeight), types.MinGridDim, types.MaxGridDim)
	out.CellSize = clamp(intOr(req.CellSize, DefaultCellSize), types.MinCellSize, types.MaxCellSize)

	mime, err := normalizeMimeType(stringOr(req.MimeType, DefaultMimeType))
	if err != nil {
		return err
	}
	out.MimeType = mime

	bg, err := normalizeColor("backgroundColor", stringOr(req.BackgroundColor, DefaultBackground))
	if err != nil {
		return err
	}
	out.BackgroundColor = bg

	palette := req.Palette
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	normalized := make([]string, len(palette))
	for i, c := range palette {
		nc, err := normalizeColor(fmt.Sprintf("palette[%d]", i), c)
		if err != nil {
			return err
		}
		normalized[i] = nc
	}
	out.Palette = normalized
	return nil
}

// normalizeMimeType canonicalizes the export media type.
// "image/jpg" is folded into "image/jpeg"; anything the exporter cannot
// encode is rejected.
func normalizeMimeType(mime string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(mime))
	if m == "image/jpg" {
		m = "image/jpeg"
	}
	if !exportMimeTypes[m] {
		return "", invalidField("mimeType", mime, "must be image/png, image/jpeg, image/gif, or image/bmp")
	}
	return m, nil
}

// normalizeColor validates a hex color and canonicalizes it to lowercase
// #rrggbb. Short #rgb form expands. Canonical form matters: grid cells
// compare colors by string equality.
func normalizeColor(field, raw string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(c, "#") {
		return "", invalidField(field, raw, "must be a hex color like #rrggbb")
	}
	hex := c[1:]
	for _, r := range hex {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", invalidField(field, raw, "must be a hex color like #rrggbb")
		}
	}
	switch len(hex) {
	case 3:
		return fmt.Sprintf("#%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]), nil
	case 6:
		return c, nil
	default:
		return "", invalidField(field, raw, "must be a hex color like #rrggbb")
	}
}

func stringOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
