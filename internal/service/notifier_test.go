package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/greenapi-notifier/internal/cache"
	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/media"
)

func newTestNotifier(t *testing.T, f *fixture, target string) *Notifier {
	t.Helper()
	ctx := context.Background()
	n := f.provider.GetDevice("dev1")
	require.NoError(t, n.PutSetting(ctx, "idInstance", "1101"))
	require.NoError(t, n.PutSetting(ctx, "apiToken", "tok"))
	require.NoError(t, n.PutSetting(ctx, "target", target))
	return n
}

func TestNotifier_SendNotification_Text(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	rec, err := n.SendNotification(context.Background(), "Hi", &domain.Options{Body: "there"}, nil, nil)
	require.NoError(t, err)

	require.Len(t, f.client.messages, 1)
	assert.Equal(t, greenapi.SendMessageRequest{ChatID: "1", Message: "Hi\n there"}, f.client.messages[0])
	assert.Equal(t, device.Credentials{InstanceID: "1101", APIToken: "tok"}, f.client.messageCreds[0])
	assert.Empty(t, f.client.files)

	assert.Equal(t, domain.StatusSuccess, rec.Status)
	assert.Equal(t, "MSG1", rec.MessageID)
	assert.Equal(t, domain.KindText, rec.Kind)

	stored := f.repo.records[rec.ID.String()]
	assert.Equal(t, domain.StatusSuccess, stored.Status)

	_, err = f.cache.Get(context.Background(), cache.SentMessages.Key("MSG1"))
	assert.NoError(t, err)
}

func TestNotifier_SendNotification_TitleOnly(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	_, err := n.SendNotification(context.Background(), "Door opened", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Door opened", f.client.messages[0].Message)
}

func TestNotifier_SendNotification_SubtitleFallback(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	_, err := n.SendNotification(context.Background(), "Hi", &domain.Options{BodyWithSubtitle: "sub"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi\n sub", f.client.messages[0].Message)
}

func TestNotifier_SendNotification_ChatIDAfterFirstColon(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Dr: Who:42@c.us")

	_, err := n.SendNotification(context.Background(), "Hi", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, " Who:42@c.us", f.client.messages[0].ChatID)
}

func TestNotifier_SendNotification_MediaObject(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	obj := &media.Media{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}
	rec, err := n.SendNotification(context.Background(), "Motion", &domain.Options{Body: "front door"}, obj, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, f.resolver.calls)
	assert.Equal(t, media.MimeImage, f.resolver.mimeType)
	assert.Empty(t, f.client.messages, "send-message must not be called when media is present")
	require.Len(t, f.client.files, 1)
	assert.Equal(t, greenapi.SendFileByURLRequest{
		ChatID:   "1",
		Caption:  "Motion\n front door",
		URLFile:  "http://notifier.local/media/obj1",
		FileName: "image.jpeg",
	}, f.client.files[0])
	assert.Equal(t, domain.KindFile, rec.Kind)
}

func TestNotifier_SendNotification_MediaURLSkipsResolver(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	_, err := n.SendNotification(context.Background(), "Motion", nil, &media.Media{URL: "https://cdn/snap.jpg"}, nil)
	require.NoError(t, err)

	assert.Zero(t, f.resolver.calls)
	require.Len(t, f.client.files, 1)
	assert.Equal(t, "https://cdn/snap.jpg", f.client.files[0].URLFile)
}

func TestNotifier_SendNotification_MediaResolutionFails(t *testing.T) {
	f := newFixture()
	f.resolver.err = media.ErrUnsupportedMedia
	n := newTestNotifier(t, f, "Alice:1")

	_, err := n.SendNotification(context.Background(), "Motion", nil, &media.Media{Data: []byte("x")}, nil)
	assert.ErrorIs(t, err, media.ErrUnsupportedMedia)
	assert.Empty(t, f.client.files)
	assert.Empty(t, f.client.messages)
}

func TestNotifier_SendNotification_InvalidTarget(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice")

	_, err := n.SendNotification(context.Background(), "Hi", nil, nil, nil)
	assert.ErrorIs(t, err, device.ErrInvalidTarget)
	assert.Empty(t, f.client.messages)
	assert.Empty(t, f.repo.records)
}

func TestNotifier_SendNotification_RemoteFailure(t *testing.T) {
	f := newFixture()
	f.client.sendErr = &greenapi.APIError{Method: "sendMessage", StatusCode: 466, Body: `{"message":"quota"}`}
	n := newTestNotifier(t, f, "Alice:1")

	rec, err := n.SendNotification(context.Background(), "Hi", nil, nil, nil)
	require.Error(t, err)

	var apiErr *greenapi.APIError
	assert.True(t, errors.As(err, &apiErr))
	require.NotNil(t, rec)
	assert.Equal(t, domain.StatusFailed, rec.Status)
	assert.Equal(t, `{"message":"quota"}`, rec.RawResponse)
	assert.Equal(t, domain.StatusFailed, f.repo.records[rec.ID.String()].Status)
}

func TestNotifier_LoadContacts(t *testing.T) {
	f := newFixture()
	f.client.contacts = []greenapi.Contact{{Name: "Alice", ID: "1"}, {Name: "Bob", ID: "2"}}
	n := newTestNotifier(t, f, "Alice:1")

	require.NoError(t, n.PutSetting(context.Background(), "loadContacts", ""))

	form, err := n.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice:1", "Bob:2"}, formByKey(form)["target"].Choices)
	assert.Equal(t, []device.Credentials{{InstanceID: "1101", APIToken: "tok"}}, f.client.contactCreds)
}

func TestNotifier_LoadContactsFailure(t *testing.T) {
	f := newFixture()
	f.client.contactsErr = errors.New("dns failure")
	n := newTestNotifier(t, f, "Alice:1")

	err := n.PutSetting(context.Background(), "loadContacts", "")
	require.Error(t, err)

	form, err := n.GetSettings(context.Background())
	require.NoError(t, err)
	byKey := formByKey(form)
	assert.False(t, byKey["error"].Hide)
	assert.Contains(t, byKey["error"].Value, "dns failure")
}

func TestNotifier_Notifications(t *testing.T) {
	f := newFixture()
	n := newTestNotifier(t, f, "Alice:1")

	_, err := n.SendNotification(context.Background(), "one", nil, nil, nil)
	require.NoError(t, err)
	_, err = n.SendNotification(context.Background(), "two", nil, nil, nil)
	require.NoError(t, err)

	items, total, err := n.Notifications(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
