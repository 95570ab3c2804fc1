package synchronization

import (
	"fmt"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/math"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
)

const (
	shaderStages = metadata.StageVertexShader |
		metadata.StageTessellationControlShader |
		metadata.StageTessellationEvaluationShader |
		metadata.StageGeometryShader |
		metadata.StageFragmentShader |
		metadata.StageComputeShader

	graphics    = metadata.StageAllGraphics | metadata.StageAllCommands
	allCommands = metadata.StageAllCommands
)

// supportedStages maps each access bit to the stages that may perform it.
var supportedStages = map[metadata.AccessMask]metadata.StageMask{
	metadata.AccessIndirectCommandRead:         metadata.StageDrawIndirect | graphics,
	metadata.AccessIndexRead:                   metadata.StageVertexInput | graphics,
	metadata.AccessVertexAttributeRead:         metadata.StageVertexInput | graphics,
	metadata.AccessUniformRead:                 shaderStages | graphics,
	metadata.AccessInputAttachmentRead:         metadata.StageFragmentShader | graphics,
	metadata.AccessShaderRead:                  shaderStages | graphics,
	metadata.AccessShaderWrite:                 shaderStages | graphics,
	metadata.AccessColorAttachmentRead:         metadata.StageColorAttachmentOutput | graphics,
	metadata.AccessColorAttachmentWrite:        metadata.StageColorAttachmentOutput | graphics,
	metadata.AccessDepthStencilAttachmentRead:  metadata.StageEarlyFragmentTests | metadata.StageLateFragmentTests | graphics,
	metadata.AccessDepthStencilAttachmentWrite: metadata.StageEarlyFragmentTests | metadata.StageLateFragmentTests | graphics,
	metadata.AccessTransferRead:                metadata.StageTransfer | allCommands,
	metadata.AccessTransferWrite:               metadata.StageTransfer | allCommands,
	metadata.AccessHostRead:                    metadata.StageHost | allCommands,
	metadata.AccessHostWrite:                   metadata.StageHost | allCommands,
}

var everyStage = func() (all metadata.StageMask) {
	for _, s := range metadata.StageBits() {
		all |= s
	}
	return all
}()

// SupportedStages returns the stages able to perform access bit a.
// MemoryRead and MemoryWrite are allowed with any stage.
func SupportedStages(a metadata.AccessMask) metadata.StageMask {
	if a == metadata.AccessMemoryRead || a == metadata.AccessMemoryWrite {
		return everyStage
	}
	return supportedStages[a]
}

// Validate checks that every access in op can be performed by at least one
// stage on the same side of the operation. An empty access never fails, so
// barriers ending at BottomOfPipe or starting at TopOfPipe with no access
// are well-formed.
func Validate(op metadata.SyncOperation) error {
	if err := validateSide("source", op.SrcStage, op.SrcAccess); err != nil {
		return err
	}
	return validateSide("destination", op.DstStage, op.DstAccess)
}

func validateSide(side string, stages metadata.StageMask, access metadata.AccessMask) error {
	for _, bit := range math.Bits(access) {
		if !stages.Overlaps(SupportedStages(bit)) {
			return fmt.Errorf("%w: %s access %s with stages %s", core.ErrUnsupportedAccess, side, bit, stages)
		}
	}
	return nil
}
