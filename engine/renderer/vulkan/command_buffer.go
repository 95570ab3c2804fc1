package vulkan

import (
	"fmt"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	vk "github.com/goki/vulkan"
)

type VulkanCommandBufferState int

const (
	COMMAND_BUFFER_STATE_READY VulkanCommandBufferState = iota
	COMMAND_BUFFER_STATE_RECORDING
	COMMAND_BUFFER_STATE_RECORDING_ENDED
	COMMAND_BUFFER_STATE_SUBMITTED
	COMMAND_BUFFER_STATE_NOT_ALLOCATED
)

func (s VulkanCommandBufferState) String() string {
	switch s {
	case COMMAND_BUFFER_STATE_READY:
		return "ready"
	case COMMAND_BUFFER_STATE_RECORDING:
		return "recording"
	case COMMAND_BUFFER_STATE_RECORDING_ENDED:
		return "recording ended"
	case COMMAND_BUFFER_STATE_SUBMITTED:
		return "submitted"
	default:
		return "not allocated"
	}
}

// VulkanCommandBuffer wraps a command buffer allocated by the frame loop.
type VulkanCommandBuffer struct {
	Handle vk.CommandBuffer
	// Command buffer state.
	State VulkanCommandBufferState
}

func WrapCommandBuffer(handle vk.CommandBuffer) *VulkanCommandBuffer {
	state := COMMAND_BUFFER_STATE_READY
	if handle == nil {
		state = COMMAND_BUFFER_STATE_NOT_ALLOCATED
	}
	return &VulkanCommandBuffer{
		Handle: handle,
		State:  state,
	}
}

func (v *VulkanCommandBuffer) Begin(is_single_use bool) error {
	if v.State != COMMAND_BUFFER_STATE_READY {
		return fmt.Errorf("cannot begin command buffer in state %s", v.State)
	}

	vBeginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: 0,
	}

	if is_single_use {
		vBeginInfo.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	}

	if res := vk.BeginCommandBuffer(v.Handle, vBeginInfo); res != vk.Success {
		err := fmt.Errorf("failed to begin command buffer: %w", ResultError(res))
		core.LogError(err.Error())
		return err
	}
	v.State = COMMAND_BUFFER_STATE_RECORDING

	return nil
}

func (v *VulkanCommandBuffer) End() error {
	if v.State != COMMAND_BUFFER_STATE_RECORDING {
		return fmt.Errorf("cannot end command buffer in state %s", v.State)
	}
	if res := vk.EndCommandBuffer(v.Handle); res != vk.Success {
		err := fmt.Errorf("failed to end command buffer: %w", ResultError(res))
		core.LogError(err.Error())
		return err
	}
	v.State = COMMAND_BUFFER_STATE_RECORDING_ENDED
	return nil
}

func (v *VulkanCommandBuffer) UpdateSubmitted() {
	v.State = COMMAND_BUFFER_STATE_SUBMITTED
}

func (v *VulkanCommandBuffer) Reset() {
	v.State = COMMAND_BUFFER_STATE_READY
}

// RecordBarrier records op as an image barrier on the swapchain image.
func (v *VulkanCommandBuffer) RecordBarrier(op metadata.SyncOperation, barrier vk.ImageMemoryBarrier) error {
	if v.State != COMMAND_BUFFER_STATE_RECORDING {
		return fmt.Errorf("cannot record barrier in state %s", v.State)
	}
	vk.CmdPipelineBarrier(
		v.Handle,
		SrcStageFlags(op.SrcStage),
		DstStageFlags(op.DstStage),
		0,
		0, nil,
		0, nil,
		1, []vk.ImageMemoryBarrier{barrier})
	return nil
}

/**
 * Records the transition that must precede the first color write to image.
 * The plan's acquire wait and this barrier share the color stage, which is
 * what makes the image's availability reach the writes.
 */
func (v *VulkanCommandBuffer) RecordAcquireBarrier(plan metadata.SwapchainSyncPlan, image vk.Image) error {
	return v.RecordBarrier(plan.AcquireBarrier, AcquireTransition(plan, image))
}

/**
 * Records the transition to the present layout after the last color write.
 */
func (v *VulkanCommandBuffer) RecordPresentBarrier(plan metadata.SwapchainSyncPlan, image vk.Image) error {
	return v.RecordBarrier(plan.PresentBarrier, PresentTransition(plan, image))
}
