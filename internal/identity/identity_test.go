package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	first := UUID("stable-key")
	second := UUID("stable-key")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("same key produced different ids: %s vs %s", first, second)
	}
	if UUID("other-key") == first {
		t.Fatalf("distinct keys collided")
	}
}

func TestUUIDBlankKey(t *testing.T) {
	if UUID("   ") != uuid.Nil {
		t.Fatalf("blank key must map to uuid.Nil")
	}
}

func TestPostAndDocumentNamespacesDisjoint(t *testing.T) {
	if PostUUID("alpha") == DocumentUUID("alpha") {
		t.Fatalf("post and document namespaces must not collide")
	}
}

func TestDocumentUUIDCaseInsensitive(t *testing.T) {
	if DocumentUUID("Alpha") != DocumentUUID("alpha") {
		t.Fatalf("document ids must be case insensitive")
	}
}
