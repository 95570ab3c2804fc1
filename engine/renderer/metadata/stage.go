package metadata

import (
	"fmt"
	"strings"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/math"
)

/** @brief A set of pipeline stages. Order is irrelevant, equality is by membership. */
type StageMask uint32

/** @brief Pipeline stages, mirroring the graphics API's stage flags. */
const (
	StageTopOfPipe StageMask = 1 << iota
	StageDrawIndirect
	StageVertexInput
	StageVertexShader
	StageTessellationControlShader
	StageTessellationEvaluationShader
	StageGeometryShader
	StageFragmentShader
	StageEarlyFragmentTests
	StageLateFragmentTests
	StageColorAttachmentOutput
	StageComputeShader
	StageTransfer
	StageBottomOfPipe
	StageHost
	StageAllGraphics
	StageAllCommands
	/** @brief The empty set. Also how the presentation engine is represented. */
	StageNone StageMask = 0
)

type stageName struct {
	bit  StageMask
	name string
}

// Ordered by bit value so Names is stable.
var stageNames = [...]stageName{
	{StageTopOfPipe, "TopOfPipe"},
	{StageDrawIndirect, "DrawIndirect"},
	{StageVertexInput, "VertexInput"},
	{StageVertexShader, "VertexShader"},
	{StageTessellationControlShader, "TessellationControlShader"},
	{StageTessellationEvaluationShader, "TessellationEvaluationShader"},
	{StageGeometryShader, "GeometryShader"},
	{StageFragmentShader, "FragmentShader"},
	{StageEarlyFragmentTests, "EarlyFragmentTests"},
	{StageLateFragmentTests, "LateFragmentTests"},
	{StageColorAttachmentOutput, "ColorAttachmentOutput"},
	{StageComputeShader, "ComputeShader"},
	{StageTransfer, "Transfer"},
	{StageBottomOfPipe, "BottomOfPipe"},
	{StageHost, "Host"},
	{StageAllGraphics, "AllGraphics"},
	{StageAllCommands, "AllCommands"},
}

// StageBits lists every named stage, lowest bit first.
func StageBits() []StageMask {
	bits := make([]StageMask, len(stageNames))
	for i, s := range stageNames {
		bits[i] = s.bit
	}
	return bits
}

func (m StageMask) IsEmpty() bool { return m == StageNone }

// Has reports whether every stage in o is also in m.
func (m StageMask) Has(o StageMask) bool { return math.HasAll(m, o) }

// Overlaps reports whether m and o share at least one stage.
func (m StageMask) Overlaps(o StageMask) bool { return math.HasAny(m, o) }

func (m StageMask) Intersect(o StageMask) StageMask { return m & o }

func (m StageMask) Union(o StageMask) StageMask { return m | o }

// Names returns the name of every stage in m, lowest bit first.
// Bits without a name are reported in hex.
func (m StageMask) Names() []string {
	var names []string
	for _, bit := range math.Bits(m) {
		names = append(names, stageBitName(bit))
	}
	return names
}

func stageBitName(bit StageMask) string {
	for _, s := range stageNames {
		if s.bit == bit {
			return s.name
		}
	}
	return fmt.Sprintf("0x%x", uint32(bit))
}

func (m StageMask) String() string {
	if m.IsEmpty() {
		return "None"
	}
	return strings.Join(m.Names(), "|")
}

// ParseStageMask parses the String form of a mask. Names are matched
// case-insensitively and may be separated by '|' or ','.
func ParseStageMask(s string) (StageMask, error) {
	var m StageMask
	for _, field := range splitFlags(s) {
		if strings.EqualFold(field, "None") {
			continue
		}
		bit, ok := lookupStage(field)
		if !ok {
			return StageNone, fmt.Errorf("%w: %q", core.ErrUnknownStage, field)
		}
		m |= bit
	}
	return m, nil
}

func lookupStage(name string) (StageMask, bool) {
	for _, s := range stageNames {
		if strings.EqualFold(s.name, name) {
			return s.bit, true
		}
	}
	return StageNone, false
}

func (m StageMask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *StageMask) UnmarshalText(text []byte) error {
	parsed, err := ParseStageMask(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func splitFlags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
