package synchronization

import (
	"errors"
	"sync"
	"testing"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
)

func TestPlanFrameSyncColorAttachment(t *testing.T) {
	acquire := metadata.NewSemaphoreRef("acquire")
	finished := metadata.NewSemaphoreRef("finished")
	plan := PlanFrameSync(acquire, finished, metadata.StageColorAttachmentOutput, metadata.AccessColorAttachmentWrite)

	if plan.AcquireSemaphore != acquire || plan.RenderFinishedSemaphore != finished {
		t.Fatalf("PlanFrameSync: semaphores not carried:\nhave %v, %v\nwant %v, %v",
			plan.AcquireSemaphore, plan.RenderFinishedSemaphore, acquire, finished)
	}

	for _, x := range [...]struct {
		name       string
		have, want metadata.SyncOperation
	}{
		{"AcquireWait", plan.AcquireWait, metadata.SyncOperation{
			DstStage: metadata.StageColorAttachmentOutput,
		}},
		{"AcquireBarrier", plan.AcquireBarrier, metadata.SyncOperation{
			SrcStage:  metadata.StageColorAttachmentOutput,
			DstStage:  metadata.StageColorAttachmentOutput,
			DstAccess: metadata.AccessColorAttachmentWrite,
		}},
		{"PresentBarrier", plan.PresentBarrier, metadata.SyncOperation{
			SrcStage:  metadata.StageColorAttachmentOutput,
			SrcAccess: metadata.AccessColorAttachmentWrite,
			DstStage:  metadata.StageBottomOfPipe,
		}},
		{"Present", plan.Present, metadata.SyncOperation{
			SrcStage: metadata.StageAllCommands,
		}},
	} {
		if x.have != x.want {
			t.Fatalf("plan.%s:\nhave %v\nwant %v", x.name, x.have, x.want)
		}
	}

	if !FormsChain(plan.AcquireWait, plan.AcquireBarrier) {
		t.Fatal("FormsChain(AcquireWait, AcquireBarrier): want true")
	}
	if err := Check(plan); err != nil {
		t.Fatalf("Check: unexpected error: %v", err)
	}
	if err := Validate(plan.PresentBarrier); err != nil {
		t.Fatalf("Validate(PresentBarrier): unexpected error: %v", err)
	}
}

func TestPlanFrameSyncChainsForAnyStage(t *testing.T) {
	for _, stage := range metadata.StageBits() {
		for _, access := range metadata.AccessBits() {
			plan := PlanFrameSync(metadata.SemaphoreRef{}, metadata.SemaphoreRef{}, stage|metadata.StageTransfer, access)
			if !FormsChain(plan.AcquireWait, plan.AcquireBarrier) {
				t.Fatalf("PlanFrameSync(%v, %v): acquire wait does not chain", stage, access)
			}
			if !plan.Present.DstStage.IsEmpty() || !plan.Present.DstAccess.IsEmpty() {
				t.Fatalf("PlanFrameSync(%v, %v): present has destination scope %v", stage, access, plan.Present)
			}
			if !plan.AcquireWait.DstAccess.IsEmpty() || !plan.AcquireWait.SrcStage.IsEmpty() {
				t.Fatalf("PlanFrameSync(%v, %v): acquire wait %v", stage, access, plan.AcquireWait)
			}
		}
	}
}

func TestPlanFrameSyncIdempotent(t *testing.T) {
	acquire := metadata.NewSemaphoreRef("a")
	finished := metadata.NewSemaphoreRef("f")
	p1 := PlanFrameSync(acquire, finished, metadata.StageColorAttachmentOutput|metadata.StageLateFragmentTests, metadata.AccessColorAttachmentWrite|metadata.AccessDepthStencilAttachmentWrite)
	p2 := PlanFrameSync(acquire, finished, metadata.StageColorAttachmentOutput|metadata.StageLateFragmentTests, metadata.AccessColorAttachmentWrite|metadata.AccessDepthStencilAttachmentWrite)
	if p1 != p2 {
		t.Fatalf("PlanFrameSync: plans differ:\n%v\n%v", p1, p2)
	}
}

func TestPlanFrameSyncConcurrent(t *testing.T) {
	want := DefaultPlanner().Plan(metadata.SemaphoreRef{Name: "a"}, metadata.SemaphoreRef{Name: "f"})
	var wg sync.WaitGroup
	errs := make(chan metadata.SwapchainSyncPlan, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if have := DefaultPlanner().Plan(metadata.SemaphoreRef{Name: "a"}, metadata.SemaphoreRef{Name: "f"}); have != want {
				errs <- have
			}
		}()
	}
	wg.Wait()
	close(errs)
	for have := range errs {
		t.Fatalf("concurrent Plan:\nhave %v\nwant %v", have, want)
	}
}

func TestPlanFrameSyncEmptyStage(t *testing.T) {
	plan := PlanFrameSync(metadata.SemaphoreRef{}, metadata.SemaphoreRef{}, metadata.StageNone, metadata.AccessNone)
	if FormsChain(plan.AcquireWait, plan.AcquireBarrier) {
		t.Fatal("FormsChain with empty color stage: want false")
	}
	if err := Check(plan); !errors.Is(err, core.ErrBrokenChain) {
		t.Fatalf("Check:\nhave %v\nwant %v", err, core.ErrBrokenChain)
	}
}

func TestCheckUnsupportedAccess(t *testing.T) {
	p := Planner{ColorStage: metadata.StageTransfer, ColorAccess: metadata.AccessColorAttachmentWrite}
	err := Check(p.Plan(metadata.SemaphoreRef{}, metadata.SemaphoreRef{}))
	if !errors.Is(err, core.ErrUnsupportedAccess) {
		t.Fatalf("Check:\nhave %v\nwant %v", err, core.ErrUnsupportedAccess)
	}
}

func TestDefaultPlanner(t *testing.T) {
	p := DefaultPlanner()
	if p.ColorStage != metadata.StageColorAttachmentOutput || p.ColorAccess != metadata.AccessColorAttachmentWrite {
		t.Fatalf("DefaultPlanner:\nhave %v, %v", p.ColorStage, p.ColorAccess)
	}
}
