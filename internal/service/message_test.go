package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akinsira/guestbookapi/internal/models"
	"github.com/akinsira/guestbookapi/internal/repository"
)

func newTestMessageService(t *testing.T) (*MessageService, *repository.MessageRepository) {
	t.Helper()
	repo := repository.NewMessageRepository(filepath.Join(t.TempDir(), "messages.json"))
	if err := repo.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile failed: %v", err)
	}
	return NewMessageService(repo), repo
}

// seedMessage plants a message with a known token and creation time,
// bypassing the service so tests control the timestamp.
func seedMessage(t *testing.T, repo *repository.MessageRepository, id int64, createdAt time.Time, submitterToken string) {
	t.Helper()
	err := repo.Mutate(func(messages []models.Message) ([]models.Message, error) {
		m := models.Message{
			ID:             id,
			Name:           "Ada",
			Body:           "original",
			Date:           createdAt.Format(displayDateFormat),
			Timestamp:      createdAt.UnixMilli(),
			SubmitterToken: submitterToken,
		}
		return append([]models.Message{m}, messages...), nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestCreateReturnsTokenAndStripsItFromReads(t *testing.T) {
	svc, _ := newTestMessageService(t)

	msg, tok, err := svc.Create("  Ada  ", "  hello there  ")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("Expected a 64 char hex token, got %q", tok)
	}
	if msg.Name != "Ada" || msg.Body != "hello there" {
		t.Errorf("Expected trimmed fields, got name=%q body=%q", msg.Name, msg.Body)
	}
	if msg.SubmitterToken != "" {
		t.Error("Create must not expose the submitter token on the message")
	}

	page, err := svc.List(1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(page.Messages))
	}
	if page.Messages[0].SubmitterToken != "" {
		t.Error("List must strip submitter tokens")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, repo := newTestMessageService(t)

	cases := []struct {
		name, body string
	}{
		{"", "hello"},
		{"   ", "hello"},
		{"Ada", ""},
		{"Ada", "   "},
		{strings.Repeat("a", 101), "hello"},
		{"Ada", strings.Repeat("b", 2001)},
	}
	for i, tc := range cases {
		_, _, err := svc.Create(tc.name, tc.body)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}

	messages, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected collection unmodified after rejected submissions, got %d messages", len(messages))
	}
}

func TestLengthLimitsCountCharactersNotBytes(t *testing.T) {
	svc, _ := newTestMessageService(t)

	// 100 characters but 200 bytes; the limit is characters
	name := strings.Repeat("é", 100)
	body := strings.Repeat("ü", 2000)
	if _, _, err := svc.Create(name, body); err != nil {
		t.Fatalf("Expected a 100 char multibyte name and 2000 char body to be accepted, got %v", err)
	}

	var verr *ValidationError
	if _, _, err := svc.Create(strings.Repeat("é", 101), "hello"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for a 101 char name, got %v", err)
	}
	if _, _, err := svc.Create("Ada", strings.Repeat("ü", 2001)); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for a 2001 char body, got %v", err)
	}
}

func TestUpdateCountsCharactersNotBytes(t *testing.T) {
	svc, repo := newTestMessageService(t)
	seedMessage(t, repo, 1, time.Now(), "tok")

	if _, err := svc.Update(1, strings.Repeat("ü", 2000), Actor{Admin: true}); err != nil {
		t.Fatalf("Expected a 2000 char multibyte body to be accepted, got %v", err)
	}

	var verr *ValidationError
	if _, err := svc.Update(1, strings.Repeat("ü", 2001), Actor{Admin: true}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for a 2001 char body, got %v", err)
	}
}

func TestCreateNewestFirstWithUniqueIDs(t *testing.T) {
	svc, _ := newTestMessageService(t)
	base := time.Now()
	svc.now = func() time.Time { return base } // same millisecond for every create

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Create("Ada", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	page, err := svc.List(1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Messages[0].Body != "message 2" {
		t.Errorf("Expected newest message first, got %q", page.Messages[0].Body)
	}
	seen := make(map[int64]bool)
	for _, m := range page.Messages {
		if seen[m.ID] {
			t.Errorf("Duplicate id %d for same-millisecond submissions", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestMessageService(t)
	for i := 0; i < 25; i++ {
		if _, _, err := svc.Create("Ada", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	page, err := svc.List(3, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	p := page.Pagination
	if len(page.Messages) != 5 {
		t.Errorf("Expected 5 items on page 3, got %d", len(page.Messages))
	}
	if p.CurrentPage != 3 || p.TotalPages != 3 || p.TotalMessages != 25 {
		t.Errorf("Unexpected pagination info: %+v", p)
	}
	if p.HasNext {
		t.Error("Expected hasNext=false on the last page")
	}
	if !p.HasPrev {
		t.Error("Expected hasPrev=true on page 3")
	}
}

func TestListDefaultsAndLimitCap(t *testing.T) {
	svc, _ := newTestMessageService(t)
	for i := 0; i < 15; i++ {
		if _, _, err := svc.Create("Ada", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	page, err := svc.List(0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Messages) != 10 || page.Pagination.CurrentPage != 1 {
		t.Errorf("Expected defaults page=1 limit=10, got %d items on page %d", len(page.Messages), page.Pagination.CurrentPage)
	}

	page, err = svc.List(1, 100000)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Pagination.TotalPages != 1 || len(page.Messages) != 15 {
		t.Errorf("Expected capped limit to still return all 15, got %d", len(page.Messages))
	}

	// a page past the end is empty, not an error
	page, err = svc.List(99, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Messages) != 0 {
		t.Errorf("Expected empty page past the end, got %d items", len(page.Messages))
	}
}

func TestUpdateAuthorization(t *testing.T) {
	const ownerToken = "a-submitter-token"
	now := time.Now()

	cases := []struct {
		name    string
		actor   Actor
		age     time.Duration
		wantErr error
	}{
		{"admin bypasses ownership and window", Actor{Admin: true}, editWindow + 24*time.Hour, nil},
		{"owner within window", Actor{SubmitterToken: ownerToken}, time.Hour, nil},
		{"owner one second inside the window", Actor{SubmitterToken: ownerToken}, editWindow - time.Second, nil},
		{"owner at the window boundary", Actor{SubmitterToken: ownerToken}, editWindow, ErrWindowExpired},
		{"owner past the window", Actor{SubmitterToken: ownerToken}, editWindow + time.Hour, ErrWindowExpired},
		{"wrong token", Actor{SubmitterToken: "someone-elses-token"}, time.Hour, ErrForbidden},
		{"empty token", Actor{}, time.Hour, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestMessageService(t)
			svc.now = func() time.Time { return now }
			seedMessage(t, repo, 1, now.Add(-tc.age), ownerToken)

			msg, err := svc.Update(1, "revised", tc.actor)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if msg.Body != "revised" || !msg.Edited || msg.EditedDate == "" {
				t.Errorf("Expected edited message with stamp, got %+v", msg)
			}
			if msg.SubmitterToken != "" {
				t.Error("Update must not expose the submitter token")
			}
		})
	}
}

func TestUpdateValidationAndNotFound(t *testing.T) {
	svc, repo := newTestMessageService(t)
	seedMessage(t, repo, 1, time.Now(), "tok")

	if _, err := svc.Update(999, "revised", Actor{Admin: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}

	var verr *ValidationError
	if _, err := svc.Update(1, "   ", Actor{Admin: true}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for empty body, got %v", err)
	}
	if _, err := svc.Update(1, strings.Repeat("b", 2001), Actor{Admin: true}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for oversized body, got %v", err)
	}

	messages, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if messages[0].Body != "original" || messages[0].Edited {
		t.Errorf("Expected message untouched after rejected updates, got %+v", messages[0])
	}
}

func TestDelete(t *testing.T) {
	now := time.Now()

	t.Run("owner deletes within window", func(t *testing.T) {
		svc, repo := newTestMessageService(t)
		seedMessage(t, repo, 1, now, "tok")
		if err := svc.Delete(1, Actor{SubmitterToken: "tok"}); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		messages, _ := repo.List()
		if len(messages) != 0 {
			t.Errorf("Expected empty collection after delete, got %d", len(messages))
		}
	})

	t.Run("admin deletes an expired message", func(t *testing.T) {
		svc, repo := newTestMessageService(t)
		seedMessage(t, repo, 1, now.Add(-2*editWindow), "tok")
		if err := svc.Delete(1, Actor{Admin: true}); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	})

	t.Run("owner blocked past window", func(t *testing.T) {
		svc, repo := newTestMessageService(t)
		seedMessage(t, repo, 1, now.Add(-2*editWindow), "tok")
		if err := svc.Delete(1, Actor{SubmitterToken: "tok"}); !errors.Is(err, ErrWindowExpired) {
			t.Fatalf("Expected ErrWindowExpired, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestMessageService(t)
		if err := svc.Delete(7, Actor{Admin: true}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}
