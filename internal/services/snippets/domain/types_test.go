package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPublic_StripsOwnerOnlyFields(t *testing.T) {
	t.Parallel()

	sn := Snippet{
		ID:        "sn-1",
		UserID:    "u-1",
		Title:     "T",
		Content:   "c",
		Language:  "Go",
		Tags:      []string{"a"},
		Favourite: true,
		IsPublic:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	raw, err := json.Marshal(sn.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, field := range []string{"user_id", "favourite", "is_public", "updated_at"} {
		if strings.Contains(body, field) {
			t.Fatalf("public view leaks %q: %s", field, body)
		}
	}
	for _, field := range []string{`"id"`, `"title"`, `"content"`, `"language"`, `"tags"`, `"created_at"`} {
		if !strings.Contains(body, field) {
			t.Fatalf("public view missing %s: %s", field, body)
		}
	}
}
