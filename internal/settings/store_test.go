package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/greenapi-notifier/internal/testutil"
)

func hidden(t *testing.T, s Schema) map[Key]bool {
	t.Helper()
	out := make(map[Key]bool)
	for _, f := range s.Fields() {
		out[f.Key] = f.Hide
	}
	return out
}

func TestBuildSchema_HideFlags(t *testing.T) {
	tests := []struct {
		name        string
		forPlugin   bool
		forCreation bool
		want        map[Key]bool
	}{
		{"device", false, false, map[Key]bool{
			KeyIDInstance: false, KeyAPIToken: false, KeyLoadContacts: false, KeyError: true, KeyTarget: false,
		}},
		{"plugin", true, false, map[Key]bool{
			KeyIDInstance: false, KeyAPIToken: false, KeyLoadContacts: false, KeyError: true, KeyTarget: true,
		}},
		{"creation", false, true, map[Key]bool{
			KeyIDInstance: true, KeyAPIToken: true, KeyLoadContacts: true, KeyError: true, KeyTarget: false,
		}},
		{"plugin and creation", true, true, map[Key]bool{
			KeyIDInstance: true, KeyAPIToken: true, KeyLoadContacts: true, KeyError: true, KeyTarget: true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hidden(t, BuildSchema(tt.forPlugin, tt.forCreation)))
		})
	}
}

func TestBuildSchema_Types(t *testing.T) {
	s := BuildSchema(false, false)

	var keys []Key
	for _, f := range s.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, Keys, keys)

	token, ok := s.Field(KeyAPIToken)
	require.True(t, ok)
	assert.Equal(t, TypePassword, token.Type)

	button, _ := s.Field(KeyLoadContacts)
	assert.Equal(t, TypeButton, button.Type)

	errField, _ := s.Field(KeyError)
	assert.Equal(t, TypeHTML, errField.Type)
	assert.Equal(t, "Click the load target button first", errField.Title)
}

func TestStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	s := NewStore(storage, "dev1", BuildSchema(false, false))

	require.NoError(t, s.PutSetting(ctx, KeyIDInstance, "1101"))
	require.NoError(t, s.PutSetting(ctx, KeyAPIToken, "tok"))

	creds, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1101", creds.InstanceID)
	assert.Equal(t, "tok", creds.APIToken)

	// other native ids are isolated
	other := NewStore(storage, "dev2", BuildSchema(false, false))
	v, err := other.Value(ctx, KeyIDInstance)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestStore_PutSetting_UnknownKey(t *testing.T) {
	s := NewStore(testutil.NewMemoryStorage(), "dev1", BuildSchema(false, false))
	err := s.PutSetting(context.Background(), Key("nope"), "x")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestStore_ButtonRunsHookWithoutStoring(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	s := NewStore(storage, "dev1", BuildSchema(false, false))

	called := 0
	s.OnPut(KeyLoadContacts, func(ctx context.Context, value string) error {
		called++
		return errors.New("remote down")
	})

	err := s.PutSetting(ctx, KeyLoadContacts, "")
	assert.EqualError(t, err, "remote down")
	assert.Equal(t, 1, called)

	_, ok, _ := storage.GetItem(ctx, "dev1", string(KeyLoadContacts))
	assert.False(t, ok)
}

func TestStore_GetSettings_ErrorFieldAndChoices(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testutil.NewMemoryStorage(), "dev1", BuildSchema(false, false))
	require.NoError(t, s.PutSetting(ctx, KeyTarget, "Alice:1"))
	s.SetChoices(KeyTarget, []string{"Alice:1", "Bob:2"})

	form, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.Len(t, form, len(Keys))

	byKey := make(map[string]Setting)
	for _, st := range form {
		byKey[st.Key] = st
	}
	assert.Equal(t, "Alice:1", byKey["target"].Value)
	assert.Equal(t, []string{"Alice:1", "Bob:2"}, byKey["target"].Choices)
	assert.True(t, byKey["error"].Hide)

	s.SetError("getContacts returned 401")
	form, err = s.GetSettings(ctx)
	require.NoError(t, err)
	for _, st := range form {
		if st.Key == "error" {
			assert.False(t, st.Hide)
			assert.Equal(t, "getContacts returned 401", st.Value)
		}
	}

	s.ClearError()
	assert.Empty(t, s.Error())
}
