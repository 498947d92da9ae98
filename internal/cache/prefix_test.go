package cache

import "testing"

func TestPrefixKey(t *testing.T) {
	if got := SentMessages.Key("BAE5"); got != "sent_messages:BAE5" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := MediaObjects.Key("abc"); got != "media:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}
