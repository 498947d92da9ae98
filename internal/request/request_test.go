package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRequest_Attachment(t *testing.T) {
	var req NotificationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Motion","mediaObject":{"mimeType":"image/jpeg","data":"/9j/"}}`), &req))

	m := req.Attachment()
	require.NotNil(t, m)
	assert.False(t, m.IsURL())
	assert.Equal(t, "image/jpeg", m.MimeType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, m.Data)
}

func TestNotificationRequest_URLWinsOverObject(t *testing.T) {
	req := NotificationRequest{Media: "https://cdn/snap.jpg", MediaObject: &MediaObject{Data: []byte("x")}}

	m := req.Attachment()
	require.NotNil(t, m)
	assert.Equal(t, "https://cdn/snap.jpg", m.URL)
}

func TestNotificationRequest_Options(t *testing.T) {
	assert.Nil(t, NotificationRequest{Title: "Hi"}.Options())
	assert.Nil(t, NotificationRequest{Title: "Hi"}.Attachment())
	assert.Nil(t, NotificationRequest{Title: "Hi"}.IconMedia())

	opts := NotificationRequest{Title: "Hi", BodyWithSubtitle: "sub"}.Options()
	require.NotNil(t, opts)
	assert.Equal(t, "sub", opts.BodyWithSubtitle)
}
