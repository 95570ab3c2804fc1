package metadata

import (
	"errors"
	"testing"

	"github.com/Rob2309/vulkan-explained/engine/core"
)

func TestStageBitsDistinct(t *testing.T) {
	var seen StageMask
	for _, bit := range StageBits() {
		if bit == StageNone {
			t.Fatal("StageBits: zero bit")
		}
		if seen.Overlaps(bit) {
			t.Fatalf("StageBits: %v repeated", bit)
		}
		seen |= bit
		if name := bit.String(); name[0] == '0' {
			t.Fatalf("StageMask(%#x).String: unnamed", uint32(bit))
		}
	}
}

func TestStageMaskString(t *testing.T) {
	for _, x := range [...]struct {
		m    StageMask
		want string
	}{
		{StageNone, "None"},
		{StageColorAttachmentOutput, "ColorAttachmentOutput"},
		{StageBottomOfPipe | StageTopOfPipe, "TopOfPipe|BottomOfPipe"},
		{StageAllCommands | 1<<30, "AllCommands|0x40000000"},
	} {
		if have := x.m.String(); have != x.want {
			t.Fatalf("StageMask.String:\nhave %s\nwant %s", have, x.want)
		}
	}
}

func TestParseStageMask(t *testing.T) {
	for _, x := range [...]struct {
		s    string
		want StageMask
	}{
		{"", StageNone},
		{"None", StageNone},
		{"ColorAttachmentOutput", StageColorAttachmentOutput},
		{"colorattachmentoutput", StageColorAttachmentOutput},
		{"Transfer | FragmentShader", StageTransfer | StageFragmentShader},
		{"Transfer,Host", StageTransfer | StageHost},
	} {
		have, err := ParseStageMask(x.s)
		if err != nil {
			t.Fatalf("ParseStageMask(%q): unexpected error: %v", x.s, err)
		}
		if have != x.want {
			t.Fatalf("ParseStageMask(%q):\nhave %v\nwant %v", x.s, have, x.want)
		}
	}

	m := StageVertexShader | StageLateFragmentTests | StageHost
	if have, _ := ParseStageMask(m.String()); have != m {
		t.Fatalf("ParseStageMask(String()):\nhave %v\nwant %v", have, m)
	}

	if _, err := ParseStageMask("Transfer|PresentationEngine"); !errors.Is(err, core.ErrUnknownStage) {
		t.Fatalf("ParseStageMask: unknown name:\nhave %v\nwant %v", err, core.ErrUnknownStage)
	}
}

func TestStageMaskSetOps(t *testing.T) {
	a := StageColorAttachmentOutput | StageTransfer
	b := StageTransfer | StageHost
	if x := a.Intersect(b); x != StageTransfer {
		t.Fatalf("Intersect:\nhave %v\nwant %v", x, StageTransfer)
	}
	if x := a.Union(b); x != StageColorAttachmentOutput|StageTransfer|StageHost {
		t.Fatalf("Union:\nhave %v", x)
	}
	if !a.Has(StageTransfer) || a.Has(b) {
		t.Fatal("Has: wrong containment")
	}
	if !a.Has(StageNone) {
		t.Fatal("Has: empty set must be contained")
	}
	if StageNone.Overlaps(a) || a.Overlaps(StageNone) {
		t.Fatal("Overlaps: empty set must not overlap")
	}
}

func TestStageMaskText(t *testing.T) {
	var m StageMask
	if err := m.UnmarshalText([]byte("BottomOfPipe")); err != nil {
		t.Fatal(err)
	}
	if m != StageBottomOfPipe {
		t.Fatalf("UnmarshalText:\nhave %v\nwant %v", m, StageBottomOfPipe)
	}
	if err := m.UnmarshalText([]byte("Bogus")); err == nil {
		t.Fatal("UnmarshalText: expected error")
	}
	if m != StageBottomOfPipe {
		t.Fatalf("UnmarshalText: failed parse modified mask: %v", m)
	}
	text, _ := (StageHost | StageTransfer).MarshalText()
	if string(text) != "Transfer|Host" {
		t.Fatalf("MarshalText:\nhave %s\nwant Transfer|Host", text)
	}
}
