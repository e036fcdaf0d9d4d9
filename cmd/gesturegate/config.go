// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"gioui.org/x/gesturegate/gesture"
	"gioui.org/x/gesturegate/internal/record"
	"gioui.org/x/gesturegate/locale"
)

// Config is the optional configuration file.
type Config struct {
	Duration Duration `toml:"duration"`
	Locale   string   `toml:"locale"`
	// Platform is the platform name reported to the gate, such
	// as "MacIntel".
	Platform    string `toml:"platform"`
	UserAgent   string `toml:"user_agent"`
	HostVersion string `toml:"host_version"`
	// Rotate makes the simulated map rotated.
	Rotate bool `toml:"rotate"`
	// Tap gives the simulated map a tap handler.
	Tap  bool           `toml:"tap"`
	Text locale.Content `toml:"text"`
	// Locales is a directory of extra locale records.
	Locales string `toml:"locales"`
	// LocalesURL is the base URL of extra locale records.
	LocalesURL string `toml:"locales_url"`
	// StayOnFullscreen keeps the gate enabled in fullscreen.
	StayOnFullscreen bool `toml:"stay_on_fullscreen"`
}

// Duration is a time.Duration written as a string, such as "1.5s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if v < 0 {
		return fmt.Errorf("duration: negative value %s", v)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func loadConfig(path string) (Config, error) {
	c := Config{Tap: true, HostVersion: "1.9.4"}
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	return c, nil
}

// platform returns the simulated platform. Unset fields come from
// the running process.
func (c Config) platform() locale.Platform {
	p := locale.Native()
	if c.Platform != "" {
		p.Name = c.Platform
	}
	p.UserAgent = c.UserAgent
	return p
}

// loader returns the locale records to resolve from, the bundled
// records last.
func (c Config) loader() locale.Loader {
	var l locale.Layers
	if c.Locales != "" {
		l = append(l, locale.Dir(os.DirFS(c.Locales), "."))
	}
	if c.LocalesURL != "" {
		l = append(l, locale.HTTP{BaseURL: c.LocalesURL})
	}
	return append(l, locale.Bundled)
}

func (c Config) options(log *slog.Logger) gesture.Options {
	p := c.platform()
	return gesture.Options{
		Text:             c.Text,
		Duration:         time.Duration(c.Duration),
		Locale:           c.Locale,
		Platform:         p,
		StayOnFullscreen: c.StayOnFullscreen,
		Logger:           log,
		Resolver: locale.Chain{
			Loader:   c.loader(),
			Platform: p,
			Logger:   log,
		},
	}
}

// tapless is a host without a tap handler.
type tapless struct {
	record.Host
	rotate bool
	ver    string
}

func (h *tapless) Rotated() bool   { return h.rotate }
func (h *tapless) Version() string { return h.ver }

// host returns a recording host with the configured capabilities.
func (c Config) host() gesture.Host {
	if !c.Tap {
		return &tapless{rotate: c.Rotate, ver: c.HostVersion}
	}
	return &record.FullHost{Rotate: c.Rotate, Ver: c.HostVersion}
}
