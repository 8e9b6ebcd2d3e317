package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOverDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "sprawl.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Display.Scale != 6 || cfg.Display.ShowOverlay {
		t.Fatalf("display section not applied: %+v", cfg.Display)
	}
	if cfg.Display.TPS != 60 || !cfg.Display.ShowHUD {
		t.Fatalf("unset display keys must keep defaults: %+v", cfg.Display)
	}
	if cfg.Terminal.FrameInterval != 33*time.Millisecond || !cfg.Terminal.Chime {
		t.Fatalf("terminal section: %+v", cfg.Terminal)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging section: %+v", cfg.Logging)
	}

	g, err := cfg.Growth()
	if err != nil {
		t.Fatalf("growth: %v", err)
	}
	if g.Name != "growth-overlay" || g.MaxRadius != 60 || g.ExpansionRate != 0.75 {
		t.Fatalf("growth config: %+v", g)
	}
	if g.TickInterval != 100*time.Millisecond {
		t.Fatalf("tick interval = %v", g.TickInterval)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.toml")); err == nil {
		t.Fatal("missing file should fail")
	}

	dir := t.TempDir()
	cases := map[string]string{
		"syntax":   "[simulation\n",
		"profile":  "[simulation]\nprofile = \"moss\"\n",
		"override": "[simulation.overrides]\nradius = 3\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		if !strings.Contains(err.Error(), path) {
			t.Fatalf("%s: error should name the file: %v", name, err)
		}
	}
}

func TestDefaultGrowth(t *testing.T) {
	g, err := Default().Growth()
	if err != nil {
		t.Fatalf("default growth: %v", err)
	}
	if g.Name != "crimson-sprawl" {
		t.Fatalf("default profile = %q", g.Name)
	}
}
