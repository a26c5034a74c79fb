// Package types defines the shared data model for InputMCP: the input
// specification handed to the UI subprocess, the submission result it
// returns, and the one-shot reply envelope on the wire.
package types

// Kind discriminates the three input specification variants.
type Kind string

const (
	// KindText collects free-form text.
	KindText Kind = "text"
	// KindImage collects a freehand drawing rendered to a raster.
	KindImage Kind = "image"
	// KindPixelArt collects grid-based pixel art.
	KindPixelArt Kind = "pixelart"
)

// TextFormat constrains the value of a text submission.
type TextFormat string

const (
	// FormatText accepts any text.
	FormatText TextFormat = "text"
	// FormatJSON requires the submitted value to be valid JSON.
	FormatJSON TextFormat = "json"
)

// Numeric field ranges. Normalization clamps into these; nothing outside
// them survives past spec.Normalize.
const (
	MinLines = 1
	MaxLines = 20

	MinImageDim = 32
	MaxImageDim = 4096

	MinGridDim = 4
	MaxGridDim = 128

	MinCellSize = 4
	MaxCellSize = 64
)

// Request is a caller-supplied, partially-specified prompt request.
// All fields are optional; spec.Normalize fills in canonical defaults.
// Pointer fields distinguish "omitted" from zero values.
type Request struct {
	Kind        string  `json:"kind,omitempty"`
	Message     *string `json:"message,omitempty"`
	SubmitLabel *string `json:"submitLabel,omitempty"`

	// Text fields.
	Placeholder *string `json:"placeholder,omitempty"`
	Lines       *int    `json:"lines,omitempty"`
	Format      *string `json:"format,omitempty"`

	// Image fields.
	Width           *int    `json:"width,omitempty"`
	Height          *int    `json:"height,omitempty"`
	MimeType        *string `json:"mimeType,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`

	// Pixel art fields.
	GridWidth  *int     `json:"gridWidth,omitempty"`
	GridHeight *int     `json:"gridHeight,omitempty"`
	CellSize   *int     `json:"cellSize,omitempty"`
	Palette    []string `json:"palette,omitempty"`

	// InitialImage is either an embeddable data URL or a filesystem path.
	// Paths are resolved by imageref.Resolve before launch.
	InitialImage *string `json:"initialImage,omitempty"`
}

// InputSpec is the fully-defaulted, validated description of what input to
// collect. Constructed once per request by spec.Normalize and immutable
// thereafter. Fields irrelevant to the Kind are zero-valued and omitted
// from the JSON handoff document.
type InputSpec struct {
	Kind        Kind   `json:"kind"`
	Message     string `json:"message"`
	SubmitLabel string `json:"submitLabel"`

	// Text fields (Kind == text).
	Placeholder string     `json:"placeholder,omitempty"`
	Lines       int        `json:"lines,omitempty"`
	Format      TextFormat `json:"format,omitempty"`

	// Raster fields (Kind == image or pixelart).
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	MimeType        string `json:"mimeType,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`

	// Pixel art fields (Kind == pixelart).
	GridWidth  int      `json:"gridWidth,omitempty"`
	GridHeight int      `json:"gridHeight,omitempty"`
	CellSize   int      `json:"cellSize,omitempty"`
	Palette    []string `json:"palette,omitempty"`

	// InitialImage, when present, is always an embeddable data URL.
	InitialImage string `json:"initialImage,omitempty"`
}

// Clone returns a copy of the spec with its own palette slice.
// Used when attaching a resolved initial image without mutating the
// normalized original.
func (s *InputSpec) Clone() *InputSpec {
	out := *s
	if s.Palette != nil {
		out.Palette = append([]string(nil), s.Palette...)
	}
	return &out
}
