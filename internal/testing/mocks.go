package testing

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// MockModule is a mock implementation of provisioning.Module.
type MockModule struct {
	mock.Mock
	category config.Category
}

var _ provisioning.Module = (*MockModule)(nil)

// NewMockModule creates a MockModule for a category. Expectations are added
// with On as usual.
func NewMockModule(category config.Category) *MockModule {
	return &MockModule{category: category}
}

// Category returns the category given to NewMockModule.
func (m *MockModule) Category() config.Category {
	return m.category
}

// GetExisting returns the mocked resources.
func (m *MockModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provisioning.Resource), args.Error(1)
}

// Remove records the removal.
func (m *MockModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Create returns the mocked resources.
func (m *MockModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provisioning.Resource), args.Error(1)
}

// Configure records the configure pass.
func (m *MockModule) Configure(ctx *provisioning.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// WithExisting configures the mock to report resources as present.
func (m *MockModule) WithExisting(resources ...provisioning.Resource) *MockModule {
	m.On("GetExisting", mock.Anything).Return(resources, nil)
	return m
}

// WithRemoveSucceeding configures every Remove call to succeed.
func (m *MockModule) WithRemoveSucceeding() *MockModule {
	m.On("Remove", mock.Anything, mock.Anything).Return(nil)
	return m
}

// RecordingObserver is a thread-safe observer that keeps every event and
// formatted message.
type RecordingObserver struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
	fields   map[string]string
	parent   *RecordingObserver
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (o *RecordingObserver) root() *RecordingObserver {
	if o.parent != nil {
		return o.parent
	}
	return o
}

// Printf records a formatted message.
func (o *RecordingObserver) Printf(format string, v ...any) {
	r := o.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, v...))
}

// Event records an event with the observer's fields merged in.
func (o *RecordingObserver) Event(event provisioning.Event) {
	if len(o.fields) > 0 {
		merged := make(map[string]string, len(o.fields)+len(event.Fields))
		for k, v := range o.fields {
			merged[k] = v
		}
		for k, v := range event.Fields {
			merged[k] = v
		}
		event.Fields = merged
	}
	r := o.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// WithFields returns an observer that records into the same log.
func (o *RecordingObserver) WithFields(fields map[string]string) provisioning.Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &RecordingObserver{fields: merged, parent: o.root()}
}

// Events returns a copy of the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	r := o.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]provisioning.Event(nil), r.events...)
}

// Messages returns a copy of the recorded messages.
func (o *RecordingObserver) Messages() []string {
	r := o.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// OfType returns the recorded events of one type.
func (o *RecordingObserver) OfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Resources returns the resource names of the recorded events of one type.
func (o *RecordingObserver) Resources(t provisioning.EventType) []string {
	var out []string
	for _, e := range o.OfType(t) {
		out = append(out, e.Resource)
	}
	return out
}
