package models

// Geometry holds the computed page and card measurements in millimeters
type Geometry struct {
	PageWidth     float64 `json:"pageWidth"`
	PageHeight    float64 `json:"pageHeight"`
	Margin        float64 `json:"margin"`
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
	Gap           float64 `json:"gap"`
	Columns       int     `json:"columns"`
	CardWidth     float64 `json:"cardWidth"`
	CardHeight    float64 `json:"cardHeight"`
	ImageHeight   float64 `json:"imageHeight"`
	TextHeight    float64 `json:"textHeight"`
}

// Typography holds font sizes in points and density dependent clamps
type Typography struct {
	Header           float64 `json:"header"`
	Title            float64 `json:"title"`
	Price            float64 `json:"price"`
	Description      float64 `json:"description"`
	Info             float64 `json:"info"`
	NameLines        int     `json:"nameLines"`
	DescriptionLines int     `json:"descriptionLines"`
	SpecsMaxHeight   float64 `json:"specsMaxHeight"` // mm
}

// ColorScheme is the fully resolved set of color roles, every field is set
type ColorScheme struct {
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary"`
	Accent         string `json:"accent"`
	Background     string `json:"background"`
	CardBackground string `json:"cardBackground"`
	Text           string `json:"text"`
	TextMuted      string `json:"textMuted"`
	CardText       string `json:"cardText"`
	Border         string `json:"border"`
	OnPrimary      string `json:"onPrimary"`
	OnAccent       string `json:"onAccent"`
}

// Slot is one grid cell of a page: a product or an empty placeholder
type Slot struct {
	Product     *Product `json:"product,omitempty"`
	Placeholder bool     `json:"placeholder"`
}

// Page is a fixed-length slot array for one physical sheet
type Page struct {
	Number      int    `json:"number"`
	BreakBefore bool   `json:"breakBefore"`
	Slots       []Slot `json:"slots"`
}

// ImageFit is the CSS object-fit mode used for product images
type ImageFit string

const (
	ImageFitCover   ImageFit = "cover"
	ImageFitContain ImageFit = "contain"
)

// Document is the self-contained printable output of one render pass
type Document struct {
	Title        string      `json:"title"`
	HTML         string      `json:"html"`
	PageCount    int         `json:"pageCount"`
	ProductCount int         `json:"productCount"`
	Geometry     Geometry    `json:"geometry"`
	Scheme       ColorScheme `json:"scheme"`
	Typography   Typography  `json:"typography"`
	ImageFit     ImageFit    `json:"imageFit"`
}
