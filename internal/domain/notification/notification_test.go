package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeMessage(t *testing.T) {
	tests := []struct {
		name  string
		title string
		opts  *Options
		want  string
	}{
		{"no options", "Hi", nil, "Hi"},
		{"empty options", "Hi", &Options{}, "Hi"},
		{"body", "Hi", &Options{Body: "there"}, "Hi\n there"},
		{"subtitle only", "Hi", &Options{BodyWithSubtitle: "sub"}, "Hi\n sub"},
		{"body wins", "Hi", &Options{Body: "there", BodyWithSubtitle: "sub"}, "Hi\n there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeMessage(tt.title, tt.opts))
		})
	}
}

func TestNew(t *testing.T) {
	n, err := New(" abcd1234 ", "1", "Hi")
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", n.NativeID)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, KindText, n.Kind)

	_, err = New("", "1", "Hi")
	assert.ErrorIs(t, err, ErrEmptyDevice)

	_, err = New("abcd1234", "", "Hi")
	assert.ErrorIs(t, err, ErrEmptyChat)
}

func TestMarkSentAndFailed(t *testing.T) {
	n, err := New("abcd1234", "1", "Hi")
	require.NoError(t, err)

	n.AttachFile("http://media/1")
	assert.Equal(t, KindFile, n.Kind)

	n.MarkFailed(`{"message":"bad"}`, errors.New("boom"))
	assert.Equal(t, StatusFailed, n.Status)
	assert.Equal(t, "boom", n.Error)

	n.MarkSent("BAE5", `{"idMessage":"BAE5"}`)
	assert.Equal(t, StatusSuccess, n.Status)
	assert.Equal(t, "BAE5", n.MessageID)
	require.NotNil(t, n.SentAt)
}
