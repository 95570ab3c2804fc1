package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	"github.com/Rob2309/vulkan-explained/engine/renderer/synchronization"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[log]
level = "debug"

[sync]
color_stage = "ColorAttachmentOutput | LateFragmentTests"
color_access = "ColorAttachmentWrite|DepthStencilAttachmentWrite"
frames_in_flight = 3
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel() != core.DebugLevel {
		t.Fatalf("LogLevel:\nhave %v\nwant debug", cfg.LogLevel())
	}
	want := synchronization.Planner{
		ColorStage:  metadata.StageColorAttachmentOutput | metadata.StageLateFragmentTests,
		ColorAccess: metadata.AccessColorAttachmentWrite | metadata.AccessDepthStencilAttachmentWrite,
	}
	if have := cfg.Planner(); have != want {
		t.Fatalf("Planner:\nhave %+v\nwant %+v", have, want)
	}
	if cfg.Sync.FramesInFlight != 3 {
		t.Fatalf("FramesInFlight:\nhave %d\nwant 3", cfg.Sync.FramesInFlight)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`[sync]
frames_in_flight = 1
`))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := cfg.Planner(), synchronization.DefaultPlanner(); have != want {
		t.Fatalf("Planner:\nhave %+v\nwant %+v", have, want)
	}
	if cfg.LogLevel() != core.InfoLevel {
		t.Fatalf("LogLevel:\nhave %v\nwant info", cfg.LogLevel())
	}

	empty, err := ParseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if *empty != *DefaultConfig() {
		t.Fatalf("ParseConfig(nil):\nhave %+v\nwant %+v", empty, DefaultConfig())
	}
}

func TestParseConfigInvalid(t *testing.T) {
	for _, doc := range [...]string{
		"[sync]\ncolor_stage = \"PresentationEngine\"\n",
		"[sync]\ncolor_access = \"NotAnAccess\"\n",
		"[sync]\ncolor_stage = \"None\"\n",
		"[sync]\ncolor_access = \"\"\n",
		"[sync]\nframes_in_flight = 0\n",
		"[sync]\nframes_in_flight = 99\n",
		"[log]\nlevel = \"loud\"\n",
		"not toml at all = = =",
	} {
		if _, err := ParseConfig([]byte(doc)); !errors.Is(err, core.ErrInvalidConfig) {
			t.Fatalf("ParseConfig(%q):\nhave %v\nwant %v", doc, err, core.ErrInvalidConfig)
		}
	}
}

func TestEncodeParse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sync.ColorStage |= metadata.StageTransfer
	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ColorAttachmentOutput|Transfer") {
		t.Fatalf("Encode: masks not written by name:\n%s", data)
	}
	back, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if *back != *cfg {
		t.Fatalf("ParseConfig(Encode()):\nhave %+v\nwant %+v", back, cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swapsync.toml")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig of missing file: expected error")
	}
	if err := os.WriteFile(path, []byte("[sync]\nframes_in_flight = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sync.FramesInFlight != 4 {
		t.Fatalf("FramesInFlight:\nhave %d\nwant 4", cfg.Sync.FramesInFlight)
	}
}
