package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/spf13/viper"
)

// DefaultSessionKey is the storage key for the persisted session.
const DefaultSessionKey = "paddy-calculator:v1"

// Print backends and page formats.
const (
	BackendLP  = "lp"
	BackendDir = "dir"

	FormatPS   = "ps"
	FormatText = "text"
)

// Settings is the resolved application configuration.
type Settings struct {
	DatabasePath string
	SessionKey   string
	Defaults     Defaults
	Print        Print
	Page         Page
}

// Defaults seed a fresh session.
type Defaults struct {
	TarePerBag     string
	RatePerQuintal string
	LabourPerBag   string
}

// Print configures the print spooler.
type Print struct {
	Backend       string
	Command       string
	Args          []string
	Dir           string
	Format        string
	SettleDelay   time.Duration
	TeardownDelay time.Duration
	Position      layout.Position
}

// Page is the physical page and its text-mode grid.
type Page struct {
	Width       float64
	Height      float64
	FontSize    float64
	TextColumns int
	TextRows    int
}

// Size returns the page size in points.
func (p Page) Size() layout.Size {
	return layout.Size{W: p.Width, H: p.Height}
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "$HOME/.local/share/paddy/paddy.db")
	v.SetDefault("session.key", DefaultSessionKey)

	v.SetDefault("defaults.tare_per_bag", "2")
	v.SetDefault("defaults.rate_per_quintal", "")
	v.SetDefault("defaults.labour_per_bag", "")

	v.SetDefault("print.backend", BackendLP)
	v.SetDefault("print.command", "lp")
	v.SetDefault("print.args", []string{})
	v.SetDefault("print.dir", "$HOME/paddy-prints")
	v.SetDefault("print.format", FormatPS)
	v.SetDefault("print.settle_delay", 120*time.Millisecond)
	v.SetDefault("print.teardown_delay", 60*time.Second)
	v.SetDefault("print.position", string(layout.DefaultPosition))

	v.SetDefault("page.width", layout.A4.W)
	v.SetDefault("page.height", layout.A4.H)
	v.SetDefault("page.font_size", layout.DefaultFontSize)
	v.SetDefault("page.text_columns", 96)
	v.SetDefault("page.text_rows", 64)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	pos, err := layout.ParsePosition(v.GetString("print.position"))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	s := Settings{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		SessionKey:   v.GetString("session.key"),
		Defaults: Defaults{
			TarePerBag:     v.GetString("defaults.tare_per_bag"),
			RatePerQuintal: v.GetString("defaults.rate_per_quintal"),
			LabourPerBag:   v.GetString("defaults.labour_per_bag"),
		},
		Print: Print{
			Backend:       v.GetString("print.backend"),
			Command:       v.GetString("print.command"),
			Args:          v.GetStringSlice("print.args"),
			Dir:           ExpandPath(v.GetString("print.dir")),
			Format:        v.GetString("print.format"),
			SettleDelay:   v.GetDuration("print.settle_delay"),
			TeardownDelay: v.GetDuration("print.teardown_delay"),
			Position:      pos,
		},
		Page: Page{
			Width:       v.GetFloat64("page.width"),
			Height:      v.GetFloat64("page.height"),
			FontSize:    v.GetFloat64("page.font_size"),
			TextColumns: v.GetInt("page.text_columns"),
			TextRows:    v.GetInt("page.text_rows"),
		},
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values the rest of the program cannot use.
func (s Settings) Validate() error {
	switch {
	case s.SessionKey == "":
		return fmt.Errorf("%w: session.key is empty", common.ErrInvalidConfig)
	case s.DatabasePath == "":
		return fmt.Errorf("%w: database.path is empty", common.ErrInvalidConfig)
	case s.Print.Backend != BackendLP && s.Print.Backend != BackendDir:
		return fmt.Errorf("%w: print.backend %q", common.ErrInvalidConfig, s.Print.Backend)
	case s.Print.Format != FormatPS && s.Print.Format != FormatText:
		return fmt.Errorf("%w: print.format %q", common.ErrInvalidConfig, s.Print.Format)
	case s.Print.Backend == BackendLP && s.Print.Command == "":
		return fmt.Errorf("%w: print.command is empty", common.ErrInvalidConfig)
	case s.Print.Backend == BackendDir && s.Print.Dir == "":
		return fmt.Errorf("%w: print.dir is empty", common.ErrInvalidConfig)
	case s.Print.SettleDelay < 0 || s.Print.TeardownDelay < 0:
		return fmt.Errorf("%w: print delays must not be negative", common.ErrInvalidConfig)
	case s.Page.Width <= 0 || s.Page.Height <= 0 || s.Page.FontSize <= 0:
		return fmt.Errorf("%w: page dimensions must be positive", common.ErrInvalidConfig)
	case s.Page.TextColumns < 2 || s.Page.TextRows < 2:
		return fmt.Errorf("%w: page text grid too small", common.ErrInvalidConfig)
	}
	return nil
}
