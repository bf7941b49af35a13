package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - applyEnvConfig: set variables override the file config, unset ones keep it.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-cfp/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("CFP_CONFIG", "/etc/cfp.yaml")
	t.Setenv("CFP_LANG", "en")
	t.Setenv("CFP_ADDR", "127.0.0.1:9000")
	t.Setenv("CFP_SOURCE_DE", "data/cfp.de.md")
	t.Setenv("CFP_SOURCE_EN", "https://example.org/cfp.en.md")
	t.Setenv("CFP_ASSET_PATH", "/srv/assets")

	env := loadEnvConfig()

	want := envConfig{
		ConfigPath: "/etc/cfp.yaml",
		Lang:       "en",
		Addr:       "127.0.0.1:9000",
		SourceDE:   "data/cfp.de.md",
		SourceEN:   "https://example.org/cfp.en.md",
		AssetPath:  "/srv/assets",
	}
	if *env != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *env, want)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("typo warns", func(t *testing.T) {
		t.Setenv("CFP_SOURCE_FR", "x.md")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if !strings.Contains(buf.String(), "CFP_SOURCE_FR") {
			t.Errorf("warning = %q, want mention of CFP_SOURCE_FR", buf.String())
		}
	})

	t.Run("known variables are silent", func(t *testing.T) {
		t.Setenv("CFP_LANG", "de")
		t.Setenv("CFP_ADDR", ":1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "CFP_LANG") || strings.Contains(buf.String(), "CFP_ADDR") {
			t.Errorf("unexpected warning %q", buf.String())
		}
	})
}

func TestApplyEnvConfig(t *testing.T) {
	t.Run("set values override", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Sources.DE = "from-file.md"

		applyEnvConfig(&envConfig{Lang: "EN", Addr: ":9999", SourceDE: "env.md", AssetPath: "/a"}, cfg)

		if cfg.DefaultLang != "en" {
			t.Errorf("DefaultLang = %q, want en", cfg.DefaultLang)
		}
		if cfg.Server.Addr != ":9999" {
			t.Errorf("Server.Addr = %q", cfg.Server.Addr)
		}
		if cfg.Sources.DE != "env.md" {
			t.Errorf("Sources.DE = %q, want env.md", cfg.Sources.DE)
		}
		if cfg.Assets.BasePath != "/a" {
			t.Errorf("Assets.BasePath = %q", cfg.Assets.BasePath)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Sources.EN = "from-file.md"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Sources.EN != "from-file.md" || cfg.DefaultLang != "de" || cfg.Server.Addr != ":8080" {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}
