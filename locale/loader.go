// SPDX-License-Identifier: Unlicense OR MIT

package locale

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/tidwall/gjson"
)

//go:embed locales/*.json
var bundled embed.FS

// Bundled loads the locale records compiled into the package.
var Bundled Loader = Dir(bundled, "locales")

type dirLoader struct {
	fsys fs.FS
	dir  string
}

// Dir returns a Loader reading <dir>/<name>.json from fsys.
func Dir(fsys fs.FS, dir string) Loader {
	return dirLoader{fsys: fsys, dir: dir}
}

func (d dirLoader) Load(ctx context.Context, name string) (Content, error) {
	if !validName(name) {
		return Content{}, fmt.Errorf("locale %q: %w", name, ErrNotFound)
	}
	data, err := fs.ReadFile(d.fsys, path.Join(d.dir, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Content{}, fmt.Errorf("locale %q: %w", name, ErrNotFound)
		}
		return Content{}, fmt.Errorf("locale %q: %w", name, err)
	}
	return Parse(data)
}

// HTTP loads locale records from <BaseURL>/<name>.json.
type HTTP struct {
	BaseURL string
	// Client is used for requests. The zero value means
	// http.DefaultClient.
	Client *http.Client
}

func (h HTTP) Load(ctx context.Context, name string) (Content, error) {
	if !validName(name) {
		return Content{}, fmt.Errorf("locale %q: %w", name, ErrNotFound)
	}
	u, err := url.JoinPath(h.BaseURL, name+".json")
	if err != nil {
		return Content{}, fmt.Errorf("locale %q: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Content{}, fmt.Errorf("locale %q: %w", name, err)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("locale %q: %w", name, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Content{}, fmt.Errorf("locale %q: %w", name, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return Content{}, fmt.Errorf("locale %q: unexpected status %s", name, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Content{}, fmt.Errorf("locale %q: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a locale record, a JSON object with the fields
// "touch", "scroll" and "scrollMac".
func Parse(data []byte) (Content, error) {
	if !gjson.ValidBytes(data) {
		return Content{}, ErrInvalid
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return Content{}, ErrInvalid
	}
	c := Content{
		Touch:     r.Get("touch").String(),
		Scroll:    r.Get("scroll").String(),
		ScrollMac: r.Get("scrollMac").String(),
	}
	if c.Touch == "" && c.Scroll == "" {
		return Content{}, fmt.Errorf("%w: no texts", ErrInvalid)
	}
	return c, nil
}

// validName reports whether name is a plausible record name. It keeps
// tags from escaping the record directory.
func validName(name string) bool {
	if name == "" {
		return false
	}
	return strings.Trim(name, "abcdefghijklmnopqrstuvwxyz0123456789-") == ""
}

// Layers tries each Loader in order and returns the first record
// found. Errors other than ErrNotFound are returned only when no
// layer has the record.
type Layers []Loader

func (l Layers) Load(ctx context.Context, name string) (Content, error) {
	var firstErr error
	for _, ld := range l {
		c, err := ld.Load(ctx, name)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrNotFound) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return Content{}, firstErr
	}
	return Content{}, fmt.Errorf("locale %q: %w", name, ErrNotFound)
}
