package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

/**
 * @brief One barrier, semaphore wait or semaphore signal edge.
 * The source half is the first synchronization scope, the destination
 * half the second. Values are never mutated once built.
 */
type SyncOperation struct {
	SrcStage  StageMask
	SrcAccess AccessMask
	DstStage  StageMask
	DstAccess AccessMask
}

func (op SyncOperation) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s)", op.SrcStage, op.SrcAccess, op.DstStage, op.DstAccess)
}

/**
 * @brief Identifies a semaphore owned by the frame loop. The device handle
 * itself never enters the planner.
 */
type SemaphoreRef struct {
	ID   uuid.UUID
	Name string
}

func NewSemaphoreRef(name string) SemaphoreRef {
	return SemaphoreRef{ID: uuid.New(), Name: name}
}

func (s SemaphoreRef) String() string {
	if s.Name == "" {
		return s.ID.String()
	}
	return fmt.Sprintf("%s(%s)", s.Name, s.ID)
}

/**
 * @brief The four operations that synchronize one swapchain image for one frame.
 * Plans are values: two plans built from the same inputs compare equal.
 */
type SwapchainSyncPlan struct {
	/** @brief Signaled by the acquire, waited on by the submit. */
	AcquireSemaphore SemaphoreRef
	/** @brief Signaled by the submit, waited on by the present. */
	RenderFinishedSemaphore SemaphoreRef

	/** @brief The submit's wait on AcquireSemaphore. */
	AcquireWait SyncOperation
	/** @brief The image barrier recorded before the first color write. */
	AcquireBarrier SyncOperation
	/** @brief The image barrier recorded after the last color write. */
	PresentBarrier SyncOperation
	/**
	 * @brief The present's wait on RenderFinishedSemaphore. It never carries a
	 * destination scope: the presentation engine is not a pipeline stage, and
	 * writes made available by PresentBarrier are made visible to it automatically.
	 */
	Present SyncOperation
}
