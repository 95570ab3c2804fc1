/*
Package synchronization computes the stage and access masks that order a
swapchain image between vkAcquireNextImageKHR, the frame's command buffer and
vkQueuePresentKHR.

Neither the acquire nor the present is a pipeline stage, so no barrier can
name them directly. The acquire signals a semaphore; the submit that waits on
it picks a stage for the wait, and an image barrier whose source stage is that
same stage continues the dependency chain into the color writes. On the way
out, a barrier makes the color writes available and the present waits on the
semaphore signaled by the submit. The presentation engine then makes every
available write visible to itself, which is why the present never carries a
destination stage or access.

Everything here is a pure function of its inputs. Nothing touches a device.
*/
package synchronization
