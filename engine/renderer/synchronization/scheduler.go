package synchronization

import (
	"fmt"
	"sync"

	"github.com/Rob2309/vulkan-explained/engine/containers"
	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
)

// MaxFramesInFlight bounds the number of frame slots a scheduler manages.
const MaxFramesInFlight = 8

// FrameSlot is the semaphore pair owned by one frame in flight.
type FrameSlot struct {
	Index          uint32
	ImageAvailable metadata.SemaphoreRef
	RenderFinished metadata.SemaphoreRef
}

// FrameScheduler hands out frame slots round robin and plans each frame
// against the slot's semaphores.
type FrameScheduler struct {
	mu      sync.Mutex
	planner Planner
	slots   *containers.RingQueue[FrameSlot]
	frame   uint64
}

func NewFrameScheduler(planner Planner, framesInFlight int) (*FrameScheduler, error) {
	if framesInFlight < 1 || framesInFlight > MaxFramesInFlight {
		err := fmt.Errorf("%w: frames in flight must be in [1, %d], got %d", core.ErrInvalidConfig, MaxFramesInFlight, framesInFlight)
		core.LogError(err.Error())
		return nil, err
	}

	slots := containers.NewRingQueue[FrameSlot](framesInFlight)
	for i := 0; i < framesInFlight; i++ {
		slot := FrameSlot{
			Index:          uint32(i),
			ImageAvailable: metadata.NewSemaphoreRef(fmt.Sprintf("image-available-%d", i)),
			RenderFinished: metadata.NewSemaphoreRef(fmt.Sprintf("render-finished-%d", i)),
		}
		if err := slots.Enqueue(slot); err != nil {
			return nil, err
		}
	}

	core.LogDebug("frame scheduler created with %d frames in flight (color stage %s, color access %s)",
		framesInFlight, planner.ColorStage, planner.ColorAccess)

	return &FrameScheduler{
		planner: planner,
		slots:   slots,
	}, nil
}

// Next advances to the next frame slot and returns it with its plan.
func (fs *FrameScheduler) Next() (FrameSlot, metadata.SwapchainSyncPlan) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	// The ring is full by construction, so rotating never fails.
	slot, _ := fs.slots.Rotate()
	fs.frame++
	return slot, fs.planner.Plan(slot.ImageAvailable, slot.RenderFinished)
}

// Frame returns how many frames Next has planned.
func (fs *FrameScheduler) Frame() uint64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.frame
}

// Slots returns the slots in the order Next will hand them out.
func (fs *FrameScheduler) Slots() []FrameSlot {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.slots.Items()
}

// SetPlanner swaps the stage/access policy used for subsequent frames.
// Slots and their semaphores are kept.
func (fs *FrameScheduler) SetPlanner(planner Planner) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.planner = planner
}

func (fs *FrameScheduler) Planner() Planner {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.planner
}
