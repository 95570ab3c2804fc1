package synchronization

import (
	"fmt"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
)

// PlanFrameSync builds the synchronization for one frame that renders into
// a swapchain image with colorStage/colorAccess.
//
// colorStage is used as the stage of the submit's semaphore wait and as the
// source stage of the acquire barrier, which is what links the two into a
// dependency chain. Any stage shared by both sides would do.
func PlanFrameSync(
	acquireSemaphore,
	renderFinishedSemaphore metadata.SemaphoreRef,
	colorStage metadata.StageMask,
	colorAccess metadata.AccessMask,
) metadata.SwapchainSyncPlan {
	return metadata.SwapchainSyncPlan{
		AcquireSemaphore:        acquireSemaphore,
		RenderFinishedSemaphore: renderFinishedSemaphore,

		// The wait carries no access; the barrier after it does.
		AcquireWait: metadata.SyncOperation{
			DstStage: colorStage,
		},
		AcquireBarrier: metadata.SyncOperation{
			SrcStage:  colorStage,
			DstStage:  colorStage,
			DstAccess: colorAccess,
		},
		// Nothing on the device consumes the image after this barrier.
		PresentBarrier: metadata.SyncOperation{
			SrcStage:  colorStage,
			SrcAccess: colorAccess,
			DstStage:  metadata.StageBottomOfPipe,
		},
		// The signal of renderFinishedSemaphore covers every command in the submit.
		Present: metadata.SyncOperation{
			SrcStage: metadata.StageAllCommands,
		},
	}
}

// Planner holds the color stage/access policy used for every frame.
type Planner struct {
	ColorStage  metadata.StageMask
	ColorAccess metadata.AccessMask
}

// DefaultPlanner renders through color attachment writes.
func DefaultPlanner() Planner {
	return Planner{
		ColorStage:  metadata.StageColorAttachmentOutput,
		ColorAccess: metadata.AccessColorAttachmentWrite,
	}
}

func (p Planner) Plan(acquireSemaphore, renderFinishedSemaphore metadata.SemaphoreRef) metadata.SwapchainSyncPlan {
	return PlanFrameSync(acquireSemaphore, renderFinishedSemaphore, p.ColorStage, p.ColorAccess)
}

// Check reports the first problem in plan: a malformed operation, or an
// acquire wait that does not chain into the acquire barrier.
func Check(plan metadata.SwapchainSyncPlan) error {
	for _, op := range [...]struct {
		name string
		op   metadata.SyncOperation
	}{
		{"acquire wait", plan.AcquireWait},
		{"acquire barrier", plan.AcquireBarrier},
		{"present barrier", plan.PresentBarrier},
		{"present", plan.Present},
	} {
		if err := Validate(op.op); err != nil {
			return fmt.Errorf("%s: %w", op.name, err)
		}
	}
	if !FormsChain(plan.AcquireWait, plan.AcquireBarrier) {
		return fmt.Errorf("%w: acquire wait %s does not reach acquire barrier %s", core.ErrBrokenChain, plan.AcquireWait, plan.AcquireBarrier)
	}
	return nil
}
