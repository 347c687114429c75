package cards

import (
	"encoding/json"
	"fmt"
)

// BackgroundConfig controls the background stage of every card. A plain
// JSON string is accepted as shorthand for {"image": <string>}. Zero-value
// fields take documented defaults at draw time.
type BackgroundConfig struct {
	// Image is a URL or local path. Optional: empty means solid Color fill.
	Image string `json:"image,omitempty"`
	// Color is the solid fill used under the image and as the fallback when
	// the image cannot be loaded. Default "#23272a".
	Color string `json:"color,omitempty"`
	// Blur is the gaussian sigma applied to the image. 0 disables it.
	Blur float64 `json:"blur,omitempty"`
	// Opacity blends the image over the solid fill, in [0, 1]. Default 1.
	Opacity *float64 `json:"opacity,omitempty"`
	// OverlayColor + OverlayOpacity tint the finished background.
	// Default overlay is black at opacity 0 (disabled).
	OverlayColor   string  `json:"overlay_color,omitempty"`
	OverlayOpacity float64 `json:"overlay_opacity,omitempty"`
}

func (b *BackgroundConfig) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BackgroundConfig{Image: s}
		return nil
	}
	type plain BackgroundConfig
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BackgroundConfig(p)
	return nil
}

// withDefaults layers documented defaults under user-supplied fields.
// Safe on a nil receiver: returns the all-default config.
func (b *BackgroundConfig) withDefaults() BackgroundConfig {
	out := BackgroundConfig{}
	if b != nil {
		out = *b
	}
	if out.Color == "" {
		out.Color = "#23272a"
	}
	if out.Opacity == nil {
		one := 1.0
		out.Opacity = &one
	}
	if out.OverlayColor == "" {
		out.OverlayColor = "#000000"
	}
	return out
}

// Stat is one name/value column on the profile card's stat panel.
type Stat struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Badge is one entry in the profile card's badge grid.
type Badge struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"` // URL or path; empty draws the placeholder
}

// WelcomeOptions configures the welcome banner.
type WelcomeOptions struct {
	Username   string            `json:"username"`
	Avatar     string            `json:"avatar"`
	Title      string            `json:"title,omitempty"`   // default "WELCOME"
	Message    string            `json:"message,omitempty"` // wrapped, drawn without shadow
	Background *BackgroundConfig `json:"background,omitempty"`
	TextColor  string            `json:"text_color,omitempty"` // default "#ffffff"
	Font       string            `json:"font,omitempty"`       // registered family; default sans-serif
}

func (o *WelcomeOptions) Validate() error {
	if o.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if o.Avatar == "" {
		return &ValidationError{Field: "avatar", Reason: "must not be empty"}
	}
	return nil
}

// RankOptions configures the rank card.
type RankOptions struct {
	Username   string            `json:"username"`
	Avatar     string            `json:"avatar"`
	Level      int               `json:"level"`
	Rank       int               `json:"rank"`
	XP         int               `json:"xp"`
	RequiredXP int               `json:"required_xp"`
	Background *BackgroundConfig `json:"background,omitempty"`
	BarColor   string            `json:"bar_color,omitempty"`   // default "#5865f2"
	TrackColor string            `json:"track_color,omitempty"` // default "#484b4e"
	TextColor  string            `json:"text_color,omitempty"`
	Font       string            `json:"font,omitempty"`
}

func (o *RankOptions) Validate() error {
	if o.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if o.Avatar == "" {
		return &ValidationError{Field: "avatar", Reason: "must not be empty"}
	}
	if o.RequiredXP <= 0 {
		return &ValidationError{Field: "required_xp", Reason: "must be positive"}
	}
	if o.XP < 0 {
		return &ValidationError{Field: "xp", Reason: "must not be negative"}
	}
	if o.Level < 0 {
		return &ValidationError{Field: "level", Reason: "must not be negative"}
	}
	if o.Rank < 0 {
		return &ValidationError{Field: "rank", Reason: "must not be negative"}
	}
	return nil
}

// maxProfileStats bounds the stat panel; extra entries are rejected rather
// than silently dropped.
const maxProfileStats = 4

// ProfileOptions configures the profile card.
type ProfileOptions struct {
	Username   string            `json:"username"`
	Avatar     string            `json:"avatar"`
	Bio        string            `json:"bio,omitempty"`
	Stats      []Stat            `json:"stats,omitempty"`
	Badges     []Badge           `json:"badges,omitempty"`
	Background *BackgroundConfig `json:"background,omitempty"`
	TextColor  string            `json:"text_color,omitempty"`
	Font       string            `json:"font,omitempty"`
}

func (o *ProfileOptions) Validate() error {
	if o.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if o.Avatar == "" {
		return &ValidationError{Field: "avatar", Reason: "must not be empty"}
	}
	if len(o.Stats) > maxProfileStats {
		return &ValidationError{
			Field:  "stats",
			Reason: fmt.Sprintf("at most %d entries, got %d", maxProfileStats, len(o.Stats)),
		}
	}
	for i, s := range o.Stats {
		if s.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("stats[%d].name", i), Reason: "must not be empty"}
		}
	}
	for i, b := range o.Badges {
		if b.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("badges[%d].name", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// BannerOptions configures the server banner.
type BannerOptions struct {
	ServerName  string            `json:"server_name"`
	Icon        string            `json:"icon"`
	MemberCount int               `json:"member_count"`
	InviteURL   string            `json:"invite_url,omitempty"` // rendered as a QR code when set
	Background  *BackgroundConfig `json:"background,omitempty"`
	TextColor   string            `json:"text_color,omitempty"`
	Font        string            `json:"font,omitempty"`
}

func (o *BannerOptions) Validate() error {
	if o.ServerName == "" {
		return &ValidationError{Field: "server_name", Reason: "must not be empty"}
	}
	if o.Icon == "" {
		return &ValidationError{Field: "icon", Reason: "must not be empty"}
	}
	if o.MemberCount < 0 {
		return &ValidationError{Field: "member_count", Reason: "must not be negative"}
	}
	return nil
}
