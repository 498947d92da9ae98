package service

import (
	"context"
	"sync"
	"time"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/media"
	"github.com/oggyb/greenapi-notifier/internal/settings"
	"github.com/oggyb/greenapi-notifier/internal/testutil"
)

// fakeClient records calls to the remote API and returns canned results.
type fakeClient struct {
	mu sync.Mutex

	contacts    []greenapi.Contact
	contactsErr error
	sendErr     error

	contactCreds []device.Credentials
	messages     []greenapi.SendMessageRequest
	messageCreds []device.Credentials
	files        []greenapi.SendFileByURLRequest
}

func (f *fakeClient) GetContacts(_ context.Context, creds device.Credentials) ([]greenapi.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contactCreds = append(f.contactCreds, creds)
	if f.contactsErr != nil {
		return nil, f.contactsErr
	}
	return f.contacts, nil
}

func (f *fakeClient) SendMessage(_ context.Context, creds device.Credentials, req greenapi.SendMessageRequest) (*greenapi.SendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, req)
	f.messageCreds = append(f.messageCreds, creds)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &greenapi.SendResponse{IDMessage: "MSG1", Raw: `{"idMessage":"MSG1"}`}, nil
}

func (f *fakeClient) SendFileByURL(_ context.Context, _ device.Credentials, req greenapi.SendFileByURLRequest) (*greenapi.SendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, req)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &greenapi.SendResponse{IDMessage: "FILE1", Raw: `{"idMessage":"FILE1"}`}, nil
}

// fakeResolver converts every object to a fixed URL.
type fakeResolver struct {
	calls    int
	mimeType string
	err      error
}

func (r *fakeResolver) ConvertToURL(_ context.Context, _ *media.Media, mimeType string) (string, error) {
	r.calls++
	r.mimeType = mimeType
	if r.err != nil {
		return "", r.err
	}
	return "http://notifier.local/media/obj1", nil
}

// fakeNotifications keeps notification records in memory.
type fakeNotifications struct {
	mu      sync.Mutex
	records map[string]domain.Notification
	order   []string
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{records: make(map[string]domain.Notification)}
}

func (f *fakeNotifications) Save(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[n.ID.String()] = *n
	f.order = append(f.order, n.ID.String())
	return nil
}

func (f *fakeNotifications) UpdateStatus(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[n.ID.String()] = *n
	return nil
}

func (f *fakeNotifications) ListByDevice(_ context.Context, nativeID string, _, _ int) ([]*domain.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Notification
	for _, id := range f.order {
		rec := f.records[id]
		if rec.NativeID == nativeID {
			out = append(out, &rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotifications) DeleteByDevice(_ context.Context, nativeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, rec := range f.records {
		if rec.NativeID == nativeID {
			delete(f.records, id)
		}
	}
	return nil
}

func (f *fakeNotifications) FailStale(_ context.Context, cutoff time.Time, reason string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, rec := range f.records {
		if rec.Status == domain.StatusPending && rec.CreatedAt.Before(cutoff) {
			rec.Status = domain.StatusFailed
			rec.Error = reason
			f.records[id] = rec
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, rec := range f.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(f.records, id)
			n++
		}
	}
	return n, nil
}

type fixture struct {
	storage  *testutil.MemoryStorage
	registry *testutil.MemoryRegistry
	client   *fakeClient
	resolver *fakeResolver
	repo     *fakeNotifications
	cache    *testutil.MemoryCache
	provider *Provider
}

func newFixture() *fixture {
	f := &fixture{
		storage:  testutil.NewMemoryStorage(),
		registry: testutil.NewMemoryRegistry(),
		client:   &fakeClient{},
		resolver: &fakeResolver{},
		repo:     newFakeNotifications(),
		cache:    testutil.NewMemoryCache(),
	}
	f.provider = NewProvider(f.registry, NewCatalog(), f.deps())
	return f
}

func (f *fixture) deps() Deps {
	return Deps{
		Storage:       f.storage,
		Client:        f.client,
		Resolver:      f.resolver,
		Notifications: f.repo,
		Cache:         f.cache,
	}
}

func formByKey(form []settings.Setting) map[string]settings.Setting {
	out := make(map[string]settings.Setting, len(form))
	for _, s := range form {
		out[s.Key] = s
	}
	return out
}
