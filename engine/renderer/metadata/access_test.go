package metadata

import (
	"errors"
	"testing"

	"github.com/Rob2309/vulkan-explained/engine/core"
)

func TestAccessBitsDistinct(t *testing.T) {
	var seen AccessMask
	for _, bit := range AccessBits() {
		if bit == AccessNone || seen.Overlaps(bit) {
			t.Fatalf("AccessBits: bad bit %#x", uint32(bit))
		}
		seen |= bit
	}
	if len(AccessBits()) != len(accessNames) {
		t.Fatal("AccessBits: length mismatch")
	}
}

func TestParseAccessMask(t *testing.T) {
	have, err := ParseAccessMask("ColorAttachmentRead|colorAttachmentWrite")
	if err != nil {
		t.Fatal(err)
	}
	if want := AccessColorAttachmentRead | AccessColorAttachmentWrite; have != want {
		t.Fatalf("ParseAccessMask:\nhave %v\nwant %v", have, want)
	}
	if have, _ := ParseAccessMask(AccessNone.String()); have != AccessNone {
		t.Fatalf("ParseAccessMask(None):\nhave %v\nwant None", have)
	}
	if _, err := ParseAccessMask("PresentRead"); !errors.Is(err, core.ErrUnknownAccess) {
		t.Fatalf("ParseAccessMask: unknown name:\nhave %v\nwant %v", err, core.ErrUnknownAccess)
	}
}

func TestAccessMaskText(t *testing.T) {
	m := AccessMemoryRead | AccessShaderWrite
	text, err := m.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "ShaderWrite|MemoryRead" {
		t.Fatalf("MarshalText:\nhave %s\nwant ShaderWrite|MemoryRead", text)
	}
	var back AccessMask
	if err := back.UnmarshalText(text); err != nil || back != m {
		t.Fatalf("UnmarshalText:\nhave %v, %v\nwant %v, nil", back, err, m)
	}
}
