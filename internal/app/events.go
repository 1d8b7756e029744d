package app

type EventType int

const (
	EventResize EventType = iota
	EventClose
)

type Event struct {
	Type          EventType
	Width, Height int // framebuffer size in pixels for EventResize
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the emitting goroutine, which for
// glfw callbacks is the render thread inside PollEvents.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// resizeLatch keeps only the latest size reported since the last take.
type resizeLatch struct {
	pending       bool
	width, height int
}

func (r *resizeLatch) set(width, height int) {
	r.pending = true
	r.width, r.height = width, height
}

func (r *resizeLatch) take() (int, int, bool) {
	if !r.pending {
		return 0, 0, false
	}
	r.pending = false
	return r.width, r.height, true
}

// watch subscribes the latch to resize events on bus.
func (r *resizeLatch) watch(bus *EventBus) {
	bus.Subscribe(EventResize, func(e Event) {
		r.set(e.Width, e.Height)
	})
}
