package vulkan

import (
	"fmt"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	vk "github.com/goki/vulkan"
	"github.com/google/uuid"
)

// FrameSemaphores resolves the planner's semaphore references to the
// handles created by the frame loop.
type FrameSemaphores struct {
	handles map[uuid.UUID]vk.Semaphore
}

func NewFrameSemaphores() *FrameSemaphores {
	return &FrameSemaphores{
		handles: make(map[uuid.UUID]vk.Semaphore),
	}
}

func (fs *FrameSemaphores) Bind(ref metadata.SemaphoreRef, handle vk.Semaphore) {
	fs.handles[ref.ID] = handle
}

func (fs *FrameSemaphores) Unbind(ref metadata.SemaphoreRef) {
	delete(fs.handles, ref.ID)
}

func (fs *FrameSemaphores) Lookup(ref metadata.SemaphoreRef) (vk.Semaphore, error) {
	handle, ok := fs.handles[ref.ID]
	if !ok || handle == vk.NullSemaphore {
		return vk.NullSemaphore, fmt.Errorf("%w: %s", core.ErrUnknownSemaphore, ref)
	}
	return handle, nil
}

// NewSubmitInfo builds the submission for one frame: wait on the acquire
// semaphore at the plan's wait stage, run cmd, signal render finished.
func NewSubmitInfo(plan metadata.SwapchainSyncPlan, sems *FrameSemaphores, cmd vk.CommandBuffer) (vk.SubmitInfo, error) {
	acquire, err := sems.Lookup(plan.AcquireSemaphore)
	if err != nil {
		return vk.SubmitInfo{}, err
	}
	finished, err := sems.Lookup(plan.RenderFinishedSemaphore)
	if err != nil {
		return vk.SubmitInfo{}, err
	}

	return vk.SubmitInfo{
		SType: vk.StructureTypeSubmitInfo,

		// Wait semaphore ensures that the color writes cannot begin until the image is available.
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{acquire},
		PWaitDstStageMask:  SubmitWaitStages(plan),

		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},

		// The semaphore(s) to be signaled when the queue is complete.
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{finished},
	}, nil
}

// NewPresentInfo builds the present for one frame. There is no stage or
// access to fill in: waiting on the render finished semaphore is enough.
func NewPresentInfo(plan metadata.SwapchainSyncPlan, sems *FrameSemaphores, swapchain vk.Swapchain, imageIndex uint32) (vk.PresentInfo, error) {
	finished, err := sems.Lookup(plan.RenderFinishedSemaphore)
	if err != nil {
		return vk.PresentInfo{}, err
	}
	return vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{finished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{swapchain},
		PImageIndices:      []uint32{imageIndex},
		PResults:           nil,
	}, nil
}

// SubmitFrame submits cmd on queue under plan and marks it submitted.
func SubmitFrame(queue vk.Queue, plan metadata.SwapchainSyncPlan, sems *FrameSemaphores, cmd *VulkanCommandBuffer, fence vk.Fence) error {
	info, err := NewSubmitInfo(plan, sems, cmd.Handle)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	if result := vk.QueueSubmit(queue, 1, []vk.SubmitInfo{info}, fence); result != vk.Success {
		err := fmt.Errorf("vkQueueSubmit failed with result: %w", ResultError(result))
		core.LogError(err.Error())
		return err
	}
	cmd.UpdateSubmitted()
	return nil
}

// PresentFrame gives the image back to the swapchain. An out of date or
// suboptimal swapchain is reported as core.ErrSwapchainOutOfDate so the
// caller can recreate it.
func PresentFrame(queue vk.Queue, plan metadata.SwapchainSyncPlan, sems *FrameSemaphores, swapchain vk.Swapchain, imageIndex uint32) error {
	info, err := NewPresentInfo(plan, sems, swapchain, imageIndex)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := ResultError(vk.QueuePresent(queue, &info)); err != nil {
		core.LogWarn("vkQueuePresentKHR: %s", err)
		return err
	}
	return nil
}
