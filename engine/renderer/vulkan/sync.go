package vulkan

import (
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	vk "github.com/goki/vulkan"
)

var stageBits = map[metadata.StageMask]vk.PipelineStageFlagBits{
	metadata.StageTopOfPipe:                    vk.PipelineStageTopOfPipeBit,
	metadata.StageDrawIndirect:                 vk.PipelineStageDrawIndirectBit,
	metadata.StageVertexInput:                  vk.PipelineStageVertexInputBit,
	metadata.StageVertexShader:                 vk.PipelineStageVertexShaderBit,
	metadata.StageTessellationControlShader:    vk.PipelineStageTessellationControlShaderBit,
	metadata.StageTessellationEvaluationShader: vk.PipelineStageTessellationEvaluationShaderBit,
	metadata.StageGeometryShader:               vk.PipelineStageGeometryShaderBit,
	metadata.StageFragmentShader:               vk.PipelineStageFragmentShaderBit,
	metadata.StageEarlyFragmentTests:           vk.PipelineStageEarlyFragmentTestsBit,
	metadata.StageLateFragmentTests:            vk.PipelineStageLateFragmentTestsBit,
	metadata.StageColorAttachmentOutput:        vk.PipelineStageColorAttachmentOutputBit,
	metadata.StageComputeShader:                vk.PipelineStageComputeShaderBit,
	metadata.StageTransfer:                     vk.PipelineStageTransferBit,
	metadata.StageBottomOfPipe:                 vk.PipelineStageBottomOfPipeBit,
	metadata.StageHost:                         vk.PipelineStageHostBit,
	metadata.StageAllGraphics:                  vk.PipelineStageAllGraphicsBit,
	metadata.StageAllCommands:                  vk.PipelineStageAllCommandsBit,
}

var accessBits = map[metadata.AccessMask]vk.AccessFlagBits{
	metadata.AccessIndirectCommandRead:         vk.AccessIndirectCommandReadBit,
	metadata.AccessIndexRead:                   vk.AccessIndexReadBit,
	metadata.AccessVertexAttributeRead:         vk.AccessVertexAttributeReadBit,
	metadata.AccessUniformRead:                 vk.AccessUniformReadBit,
	metadata.AccessInputAttachmentRead:         vk.AccessInputAttachmentReadBit,
	metadata.AccessShaderRead:                  vk.AccessShaderReadBit,
	metadata.AccessShaderWrite:                 vk.AccessShaderWriteBit,
	metadata.AccessColorAttachmentRead:         vk.AccessColorAttachmentReadBit,
	metadata.AccessColorAttachmentWrite:        vk.AccessColorAttachmentWriteBit,
	metadata.AccessDepthStencilAttachmentRead:  vk.AccessDepthStencilAttachmentReadBit,
	metadata.AccessDepthStencilAttachmentWrite: vk.AccessDepthStencilAttachmentWriteBit,
	metadata.AccessTransferRead:                vk.AccessTransferReadBit,
	metadata.AccessTransferWrite:               vk.AccessTransferWriteBit,
	metadata.AccessHostRead:                    vk.AccessHostReadBit,
	metadata.AccessHostWrite:                   vk.AccessHostWriteBit,
	metadata.AccessMemoryRead:                  vk.AccessMemoryReadBit,
	metadata.AccessMemoryWrite:                 vk.AccessMemoryWriteBit,
}

// StageFlags converts a stage mask bit for bit. Bits without a Vulkan
// counterpart are dropped.
func StageFlags(m metadata.StageMask) vk.PipelineStageFlags {
	var flags vk.PipelineStageFlags
	for bit, vkBit := range stageBits {
		if m.Has(bit) {
			flags |= vk.PipelineStageFlags(vkBit)
		}
	}
	return flags
}

func AccessFlags(m metadata.AccessMask) vk.AccessFlags {
	var flags vk.AccessFlags
	for bit, vkBit := range accessBits {
		if m.Has(bit) {
			flags |= vk.AccessFlags(vkBit)
		}
	}
	return flags
}

// SrcStageFlags is StageFlags for the first scope of vkCmdPipelineBarrier,
// which does not accept an empty mask. An empty scope becomes TopOfPipe.
func SrcStageFlags(m metadata.StageMask) vk.PipelineStageFlags {
	if m.IsEmpty() {
		return vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
	}
	return StageFlags(m)
}

// DstStageFlags is the second-scope counterpart of SrcStageFlags.
// An empty scope becomes BottomOfPipe.
func DstStageFlags(m metadata.StageMask) vk.PipelineStageFlags {
	if m.IsEmpty() {
		return vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	}
	return StageFlags(m)
}

// SwapchainImageBarrier builds the image memory barrier for op on a single
// layer, single level color image owned by one queue family.
func SwapchainImageBarrier(op metadata.SyncOperation, image vk.Image, oldLayout, newLayout vk.ImageLayout) vk.ImageMemoryBarrier {
	return vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       AccessFlags(op.SrcAccess),
		DstAccessMask:       AccessFlags(op.DstAccess),
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

// AcquireTransition moves a freshly acquired image into the color attachment
// layout. Its previous contents are discarded.
func AcquireTransition(plan metadata.SwapchainSyncPlan, image vk.Image) vk.ImageMemoryBarrier {
	return SwapchainImageBarrier(plan.AcquireBarrier, image, vk.ImageLayoutUndefined, vk.ImageLayoutColorAttachmentOptimal)
}

// PresentTransition moves a rendered image into the layout the presentation
// engine reads from.
func PresentTransition(plan metadata.SwapchainSyncPlan, image vk.Image) vk.ImageMemoryBarrier {
	return SwapchainImageBarrier(plan.PresentBarrier, image, vk.ImageLayoutColorAttachmentOptimal, vk.ImageLayoutPresentSrc)
}

// SubmitWaitStages is the pWaitDstStageMask entry paired with the acquire
// semaphore. It must share a stage with the acquire barrier's source stage.
func SubmitWaitStages(plan metadata.SwapchainSyncPlan) []vk.PipelineStageFlags {
	return []vk.PipelineStageFlags{DstStageFlags(plan.AcquireWait.DstStage)}
}
