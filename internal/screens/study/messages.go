package study

// deferredMsg carries a task posted by the controller through Defer. It is
// delivered on a later turn of the event loop, after the key that caused it
// has been fully handled.
type deferredMsg struct {
	task func()
}
