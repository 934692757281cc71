package game

type EventType int

const (
	EventFoodEaten EventType = iota
	EventSpecialFood
	EventRunEnded
	EventHighScore
	EventLevelUp
	EventChaosTriggered
	EventHazardSpawned
	EventRunReset
)

type Event struct {
	Type EventType
	X, Y int
	Data int    // Generic payload (points gained, level, event count).
	Name string // Kind or mode name where one applies.
}

type EventHandler func(Event)

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
