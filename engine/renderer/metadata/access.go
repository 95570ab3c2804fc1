package metadata

import (
	"fmt"
	"strings"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/math"
)

/** @brief A set of memory access kinds, with the same set semantics as StageMask. */
type AccessMask uint32

/** @brief Memory access kinds, mirroring the graphics API's access flags. */
const (
	AccessIndirectCommandRead AccessMask = 1 << iota
	AccessIndexRead
	AccessVertexAttributeRead
	AccessUniformRead
	AccessInputAttachmentRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite
	AccessMemoryRead
	AccessMemoryWrite
	AccessNone AccessMask = 0
)

type accessName struct {
	bit  AccessMask
	name string
}

var accessNames = [...]accessName{
	{AccessIndirectCommandRead, "IndirectCommandRead"},
	{AccessIndexRead, "IndexRead"},
	{AccessVertexAttributeRead, "VertexAttributeRead"},
	{AccessUniformRead, "UniformRead"},
	{AccessInputAttachmentRead, "InputAttachmentRead"},
	{AccessShaderRead, "ShaderRead"},
	{AccessShaderWrite, "ShaderWrite"},
	{AccessColorAttachmentRead, "ColorAttachmentRead"},
	{AccessColorAttachmentWrite, "ColorAttachmentWrite"},
	{AccessDepthStencilAttachmentRead, "DepthStencilAttachmentRead"},
	{AccessDepthStencilAttachmentWrite, "DepthStencilAttachmentWrite"},
	{AccessTransferRead, "TransferRead"},
	{AccessTransferWrite, "TransferWrite"},
	{AccessHostRead, "HostRead"},
	{AccessHostWrite, "HostWrite"},
	{AccessMemoryRead, "MemoryRead"},
	{AccessMemoryWrite, "MemoryWrite"},
}

// AccessBits lists every named access, lowest bit first.
func AccessBits() []AccessMask {
	bits := make([]AccessMask, len(accessNames))
	for i, a := range accessNames {
		bits[i] = a.bit
	}
	return bits
}

func (m AccessMask) IsEmpty() bool { return m == AccessNone }

func (m AccessMask) Has(o AccessMask) bool { return math.HasAll(m, o) }

func (m AccessMask) Overlaps(o AccessMask) bool { return math.HasAny(m, o) }

func (m AccessMask) Intersect(o AccessMask) AccessMask { return m & o }

func (m AccessMask) Union(o AccessMask) AccessMask { return m | o }

func (m AccessMask) Names() []string {
	var names []string
	for _, bit := range math.Bits(m) {
		names = append(names, accessBitName(bit))
	}
	return names
}

func accessBitName(bit AccessMask) string {
	for _, a := range accessNames {
		if a.bit == bit {
			return a.name
		}
	}
	return fmt.Sprintf("0x%x", uint32(bit))
}

func (m AccessMask) String() string {
	if m.IsEmpty() {
		return "None"
	}
	return strings.Join(m.Names(), "|")
}

func ParseAccessMask(s string) (AccessMask, error) {
	var m AccessMask
	for _, field := range splitFlags(s) {
		if strings.EqualFold(field, "None") {
			continue
		}
		bit, ok := lookupAccess(field)
		if !ok {
			return AccessNone, fmt.Errorf("%w: %q", core.ErrUnknownAccess, field)
		}
		m |= bit
	}
	return m, nil
}

func lookupAccess(name string) (AccessMask, bool) {
	for _, a := range accessNames {
		if strings.EqualFold(a.name, name) {
			return a.bit, true
		}
	}
	return AccessNone, false
}

func (m AccessMask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *AccessMask) UnmarshalText(text []byte) error {
	parsed, err := ParseAccessMask(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
