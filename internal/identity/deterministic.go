package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID maps a stable external post identifier onto a deterministic UUID
// so re-importing the same payload never mints a second local record.
func PostUUID(externalID string) uuid.UUID {
	return UUID("go-postadmin:post:" + strings.TrimSpace(externalID))
}

// DocumentUUID derives a post identifier from a markdown document slug.
func DocumentUUID(slug string) uuid.UUID {
	return UUID("go-postadmin:document:" + strings.ToLower(strings.TrimSpace(slug)))
}
