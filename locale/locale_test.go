// SPDX-License-Identifier: Unlicense OR MIT

package locale

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"testing/fstest"
)

var testFS = fstest.MapFS{
	"l/fr.json":  {Data: []byte(`{"touch": "fr touch", "scroll": "fr scroll", "scrollMac": "fr mac"}`)},
	"l/en.json":  {Data: []byte(`{"touch": "en touch", "scroll": "en scroll", "scrollMac": "en mac"}`)},
	"l/bad.json": {Data: []byte(`{"touch": `)},
	"l/sv.json":  {Data: []byte(`{"touch": "t", "scroll": "Use ctrl+scroll", "scrollMac": "Use ⌘+scroll"}`)},
}

func TestCandidates(t *testing.T) {
	for _, tc := range []struct {
		tag  string
		want []string
	}{
		{"", nil},
		{"fr", []string{"fr"}},
		{"fr-CA", []string{"fr-ca", "fr"}},
		{"en_US", []string{"en-us", "en"}},
		{"xx-YY", []string{"xx-yy", "xx"}},
		{"  de  ", []string{"de"}},
	} {
		if got := Candidates(tc.tag); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Candidates(%q) = %q; want %q", tc.tag, got, tc.want)
		}
	}
}

func TestChainFallback(t *testing.T) {
	fallback := Content{Touch: "default touch", Scroll: "default scroll", ScrollMac: "default mac"}
	c := Chain{Loader: Dir(testFS, "l"), Fallback: fallback}
	ctx := context.Background()
	for _, tc := range []struct {
		tag  string
		want string
	}{
		{"fr-CA", "fr touch"},
		{"fr", "fr touch"},
		{"en-GB", "en touch"},
		{"xx-YY", "default touch"},
		{"bad", "default touch"},
		{"", "default touch"},
		{"../l/fr", "default touch"},
	} {
		if got := c.Resolve(ctx, tc.tag).Touch; got != tc.want {
			t.Errorf("Resolve(%q).Touch = %q; want %q", tc.tag, got, tc.want)
		}
	}
}

func TestChainDefaultsToEnglish(t *testing.T) {
	c := Chain{Loader: Dir(fstest.MapFS{}, "l")}
	if got := c.Resolve(context.Background(), "fr"); got != English {
		t.Errorf("got %+v; want English", got)
	}
	if got := (Chain{}).Resolve(context.Background(), "fr"); got != English {
		t.Errorf("nil loader: got %+v; want English", got)
	}
}

func TestChainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := Chain{Loader: Dir(testFS, "l")}
	if got := c.Resolve(ctx, "fr"); got != English {
		t.Errorf("got %+v; want English after cancellation", got)
	}
}

func TestMacSubstitution(t *testing.T) {
	c := Chain{Loader: Dir(testFS, "l"), Platform: Platform{Name: "MacIntel"}}
	got := c.Resolve(context.Background(), "sv")
	if got.Scroll != "Use ⌘+scroll" {
		t.Errorf("Scroll = %q; want %q", got.Scroll, "Use ⌘+scroll")
	}
	c.Platform.Name = "Win32"
	if got := c.Resolve(context.Background(), "sv"); got.Scroll != "Use ctrl+scroll" {
		t.Errorf("Scroll = %q; want %q", got.Scroll, "Use ctrl+scroll")
	}
}

func TestPlatform(t *testing.T) {
	for _, tc := range []struct {
		p   Platform
		mac bool
		tag string
	}{
		{Platform{Name: "MacIntel", Languages: []string{"fr-CA", "en"}}, true, "fr-CA"},
		{Platform{Name: "darwin"}, true, "en"},
		{Platform{Name: "iPhone", Languages: []string{"", "de"}}, false, "de"},
		{Platform{Name: "Linux x86_64"}, false, "en"},
	} {
		if got := tc.p.IsMac(); got != tc.mac {
			t.Errorf("%q: IsMac = %v; want %v", tc.p.Name, got, tc.mac)
		}
		if got := tc.p.Language(); got != tc.tag {
			t.Errorf("%q: Language = %q; want %q", tc.p.Name, got, tc.tag)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "fr_CA.UTF-8")
	if got := FromEnv(); got != "fr-CA" {
		t.Errorf("FromEnv() = %q; want fr-CA", got)
	}
	t.Setenv("LC_ALL", "de_DE@euro")
	if got := FromEnv(); got != "de-DE" {
		t.Errorf("FromEnv() = %q; want de-DE", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse([]byte(`[1, 2]`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("array: got %v; want ErrInvalid", err)
	}
	if _, err := Parse([]byte(`{"scrollMac": "x"}`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty record: got %v; want ErrInvalid", err)
	}
	c, err := Parse([]byte(`{"touch": "a", "scroll": "b"}`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Complete() {
		t.Errorf("%+v should not be complete", c)
	}
}

func TestBundled(t *testing.T) {
	ctx := context.Background()
	en, err := Bundled.Load(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	if en != English {
		t.Errorf("bundled en = %+v; want %+v", en, English)
	}
	for _, name := range []string{"de", "es", "fr", "it", "ja", "nl", "pl", "pt", "pt-br", "ru", "zh"} {
		c, err := Bundled.Load(ctx, name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !c.Complete() {
			t.Errorf("%s: incomplete record %+v", name, c)
		}
	}
	if _, err := Bundled.Load(ctx, "xx"); !errors.Is(err, ErrNotFound) {
		t.Errorf("xx: got %v; want ErrNotFound", err)
	}
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/locales/fr.json":
			w.Write([]byte(`{"touch": "fr touch", "scroll": "fr scroll", "scrollMac": "fr mac"}`))
		case "/locales/es.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := HTTP{BaseURL: srv.URL + "/locales/", Client: srv.Client()}
	ctx := context.Background()
	if _, err := l.Load(ctx, "de"); !errors.Is(err, ErrNotFound) {
		t.Errorf("de: got %v; want ErrNotFound", err)
	}
	if _, err := l.Load(ctx, "es"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("es: got %v; want a server error", err)
	}
	c := Chain{Loader: l}
	if got := c.Resolve(ctx, "fr-BE").Touch; got != "fr touch" {
		t.Errorf("fr-BE: got %q; want fr touch", got)
	}
	if got := c.Resolve(ctx, "es"); got != English {
		t.Errorf("es: got %+v; want English", got)
	}
}

type failLoader struct{ err error }

func (f failLoader) Load(ctx context.Context, name string) (Content, error) {
	return Content{}, f.err
}

func TestLayers(t *testing.T) {
	ctx := context.Background()
	broken := errors.New("broken")
	l := Layers{failLoader{ErrNotFound}, Dir(testFS, "l")}
	if c, err := l.Load(ctx, "fr"); err != nil || c.Touch != "fr touch" {
		t.Errorf("Load(fr) = %+v, %v", c, err)
	}
	if _, err := l.Load(ctx, "de"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(de) error = %v; want ErrNotFound", err)
	}
	l = Layers{failLoader{broken}, Dir(testFS, "l")}
	if _, err := l.Load(ctx, "fr"); err != nil {
		t.Errorf("Load(fr) with a broken layer = %v", err)
	}
	if _, err := l.Load(ctx, "de"); !errors.Is(err, broken) {
		t.Errorf("Load(de) error = %v; want %v", err, broken)
	}
}
