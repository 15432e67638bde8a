package types

import "time"

// OfficeBackend identifies how Office conversions are executed.
type OfficeBackend string

const (
	// BackendLocal runs a LibreOffice binary found on PATH.
	BackendLocal OfficeBackend = "local"
	// BackendContainer runs LibreOffice inside a docker or podman image.
	BackendContainer OfficeBackend = "container"
)

// SignConfig holds defaults for the signing stage.
type SignConfig struct {
	// Margin is the distance in points between a preset position and the page edge (default 50).
	Margin float64 `json:"margin" yaml:"margin" mapstructure:"margin"`

	// TextSize is the default font size for text signatures (default 14).
	TextSize float64 `json:"text_size" yaml:"text_size" mapstructure:"text_size"`

	// ImageWidth and ImageHeight bound an image signature in points (default 150x75).
	ImageWidth  float64 `json:"image_width" yaml:"image_width" mapstructure:"image_width"`
	ImageHeight float64 `json:"image_height" yaml:"image_height" mapstructure:"image_height"`

	// RenderedWidth and RenderedHeight bound a rendered text signature (default 200x100).
	RenderedWidth  float64 `json:"rendered_width" yaml:"rendered_width" mapstructure:"rendered_width"`
	RenderedHeight float64 `json:"rendered_height" yaml:"rendered_height" mapstructure:"rendered_height"`
}

// EditConfig holds defaults for the editing stage.
type EditConfig struct {
	// FontSize is the default font size for inserted text (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Backend selects how LibreOffice runs: local or container.
	Backend OfficeBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// SofficeBin overrides the LibreOffice binary name for the local backend.
	SofficeBin string `json:"soffice_bin,omitempty" yaml:"soffice_bin,omitempty" mapstructure:"soffice_bin"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Timeout bounds a single LibreOffice run (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// JournalConfig holds settings for the optional operation journal.
type JournalConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ToolkitConfig groups all settings for the toolkit.
type ToolkitConfig struct {
	// OutputDir is the default directory for written files (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// SecretsDir holds password files for encrypted inputs (default ".secrets/").
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`

	Sign    SignConfig    `json:"sign" yaml:"sign" mapstructure:"sign"`
	Edit    EditConfig    `json:"edit" yaml:"edit" mapstructure:"edit"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Journal JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
}

// Default values applied by WithDefaults.
const (
	DefaultMargin         = 50.0
	DefaultTextSize       = 14.0
	DefaultFontSize       = 12.0
	DefaultImageWidth     = 150.0
	DefaultImageHeight    = 75.0
	DefaultRenderedWidth  = 200.0
	DefaultRenderedHeight = 100.0
	DefaultOfficeImage    = "lscr.io/linuxserver/libreoffice:latest"
	DefaultOfficeTimeout  = 2 * time.Minute
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c ToolkitConfig) WithDefaults() ToolkitConfig {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.SecretsDir == "" {
		c.SecretsDir = ".secrets/"
	}
	if c.Sign.Margin <= 0 {
		c.Sign.Margin = DefaultMargin
	}
	if c.Sign.TextSize <= 0 {
		c.Sign.TextSize = DefaultTextSize
	}
	if c.Sign.ImageWidth <= 0 {
		c.Sign.ImageWidth = DefaultImageWidth
	}
	if c.Sign.ImageHeight <= 0 {
		c.Sign.ImageHeight = DefaultImageHeight
	}
	if c.Sign.RenderedWidth <= 0 {
		c.Sign.RenderedWidth = DefaultRenderedWidth
	}
	if c.Sign.RenderedHeight <= 0 {
		c.Sign.RenderedHeight = DefaultRenderedHeight
	}
	if c.Edit.FontSize <= 0 {
		c.Edit.FontSize = DefaultFontSize
	}
	if c.Convert.Backend == "" {
		c.Convert.Backend = BackendLocal
	}
	if c.Convert.Image == "" {
		c.Convert.Image = DefaultOfficeImage
	}
	if c.Convert.Timeout <= 0 {
		c.Convert.Timeout = DefaultOfficeTimeout
	}
	return c
}
