package provisioning

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	// Printf logs a free-form message.
	Printf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "create", "configure")
	Category  config.Category   // Resource category if applicable
	Message   string            // Human-readable message
	Resource  string            // Manifest name of the resource if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceConfigured indicates a resource's settings were applied.
	EventResourceConfigured EventType = "resource.configured"
	// EventResourceFailed indicates an operation on a resource failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"

	// EventHookFailed indicates a finally hook returned an error.
	EventHookFailed EventType = "hook.failed"
)

// ConsoleObserver implements Observer on a logr.Logger.
type ConsoleObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver(log logr.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer. Failures are logged at error level, resource
// progress at info and everything else at V(1).
func (o *ConsoleObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Category != "" {
		kv = append(kv, "category", string(event.Category))
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed, EventHookFailed:
		o.log.Error(nil, event.Message, kv...)
	case EventPhaseStarted, EventValidationWarning:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{
		log:           o.log,
		contextFields: mergeFields(o.contextFields, fields),
	}
}

// keysAndValues merges the observer's context fields with extra, extra
// winning, sorted by key.
func (o *ConsoleObserver) keysAndValues(extra map[string]string) []any {
	merged := mergeFields(o.contextFields, extra)
	kv := make([]any, 0, 2*len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// mergeFields returns a new map holding base overlaid with extra.
func mergeFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// ChannelObserver forwards events to a channel, for the TUI.
// Sends block, so the receiver must drain the channel until Close.
type ChannelObserver struct {
	ch            chan Event
	contextFields map[string]string
	closeOnce     *sync.Once
}

// NewChannelObserver creates an observer with a buffered event channel.
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{
		ch:            make(chan Event, buffer),
		contextFields: map[string]string{},
		closeOnce:     &sync.Once{},
	}
}

// Events returns the receive side of the event channel.
func (o *ChannelObserver) Events() <-chan Event {
	return o.ch
}

// Close closes the event channel. No events may be sent afterwards.
func (o *ChannelObserver) Close() {
	o.closeOnce.Do(func() { close(o.ch) })
}

// Printf implements Observer. Messages are forwarded as untyped events.
func (o *ChannelObserver) Printf(format string, v ...any) {
	o.Event(Event{Message: fmt.Sprintf(format, v...)})
}

// Event implements Observer.
func (o *ChannelObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if len(o.contextFields) > 0 {
		event.Fields = mergeFields(o.contextFields, event.Fields)
	}
	o.ch <- event
}

// WithFields implements Observer. The returned observer shares the channel.
func (o *ChannelObserver) WithFields(fields map[string]string) Observer {
	return &ChannelObserver{ch: o.ch, contextFields: mergeFields(o.contextFields, fields), closeOnce: o.closeOnce}
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

// Printf implements Observer.
func (m MultiObserver) Printf(format string, v ...any) {
	for _, o := range m {
		o.Printf(format, v...)
	}
}

// Event implements Observer.
func (m MultiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

// WithFields implements Observer.
func (m MultiObserver) WithFields(fields map[string]string) Observer {
	out := make(MultiObserver, len(m))
	for i, o := range m {
		out[i] = o.WithFields(fields)
	}
	return out
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceEnsured logs a created or reused resource.
func LogResourceEnsured(observer Observer, phase string, r Resource) {
	typ, msg := EventResourceExists, fmt.Sprintf("%s already exists", r.Category)
	if r.Created {
		typ, msg = EventResourceCreated, fmt.Sprintf("%s created", r.Category)
	}
	observer.Event(Event{
		Type:     typ,
		Phase:    phase,
		Category: r.Category,
		Resource: r.Name,
		Message:  msg,
		Fields:   map[string]string{"id": r.ID},
	})
}

// LogResourceConfigured logs that a resource's settings were applied.
func LogResourceConfigured(observer Observer, phase string, category config.Category, name, detail string) {
	observer.Event(Event{
		Type:     EventResourceConfigured,
		Phase:    phase,
		Category: category,
		Resource: name,
		Message:  detail,
	})
}

// LogResourceFailed logs a failed resource operation.
func LogResourceFailed(observer Observer, phase string, category config.Category, name string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Category: category,
		Resource: name,
		Message:  fmt.Sprintf("%s failed: %v", category, err),
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase string, r Resource) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Category: r.Category,
		Resource: r.Name,
		Message:  fmt.Sprintf("deleting %s", r.Category),
		Fields:   map[string]string{"id": r.ID},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase string, r Resource) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Category: r.Category,
		Resource: r.Name,
		Message:  fmt.Sprintf("%s deleted", r.Category),
		Fields:   map[string]string{"id": r.ID},
	})
}
