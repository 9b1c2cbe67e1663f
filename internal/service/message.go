package service

import (
	"crypto/subtle"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akinsira/guestbookapi/internal/models"
	"github.com/akinsira/guestbookapi/internal/repository"
	"github.com/akinsira/guestbookapi/internal/token"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
)

const (
	maxNameLength = 100
	maxBodyLength = 2000

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// editWindow approximates six months as 180 days. Not calendar
	// accurate, the imprecision is an accepted simplification.
	editWindow = 180 * 24 * time.Hour

	displayDateFormat = "January 2, 2006"
)

// Actor identifies who is attempting a mutation: an authenticated admin, or
// an anonymous submitter presenting the capability token handed out at
// creation time.
type Actor struct {
	Admin          bool
	SubmitterToken string
}

// Page is one page of the message collection with its pagination info.
type Page struct {
	Messages   []models.Message  `json:"messages"`
	Pagination models.Pagination `json:"pagination"`
}

// MessageService owns the message lifecycle: validation, the ownership and
// edit-window policy, and orchestration over the file-backed repository.
type MessageService struct {
	repo *repository.MessageRepository
	now  func() time.Time
}

// NewMessageService creates a new service for the message API
func NewMessageService(repo *repository.MessageRepository) *MessageService {
	return &MessageService{repo: repo, now: time.Now}
}

// List returns one page of messages, newest first, with submitter tokens
// stripped. Page and limit fall back to 1 and 10 when out of range; limit is
// capped at 100.
func (s *MessageService) List(page, limit int) (*Page, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	messages, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	total := len(messages)
	startIndex := (page - 1) * limit
	endIndex := page * limit
	if startIndex > total {
		startIndex = total
	}
	if endIndex > total {
		endIndex = total
	}

	items := make([]models.Message, 0, endIndex-startIndex)
	for _, m := range messages[startIndex:endIndex] {
		items = append(items, m.Public())
	}

	totalPages := (total + limit - 1) / limit
	return &Page{
		Messages: items,
		Pagination: models.Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalMessages: total,
			HasNext:       page*limit < total,
			HasPrev:       page > 1,
		},
	}, nil
}

// Create validates and stores a new message at the head of the collection.
// The returned capability token grants the submitter edit and delete rights;
// it is surfaced exactly once and can never be recovered afterwards.
func (s *MessageService) Create(name, body string) (models.Message, string, error) {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)

	if name == "" || body == "" {
		return models.Message{}, "", &ValidationError{Reason: "Name and message are required"}
	}
	// limits are characters, not bytes; multibyte names must not be penalized
	if utf8.RuneCountInString(name) > maxNameLength {
		return models.Message{}, "", &ValidationError{Reason: "Name is too long (max 100 characters)"}
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return models.Message{}, "", &ValidationError{Reason: "Message is too long (max 2000 characters)"}
	}

	submitterToken, err := token.New()
	if err != nil {
		return models.Message{}, "", err
	}

	now := s.now()
	var created models.Message
	err = s.repo.Mutate(func(messages []models.Message) ([]models.Message, error) {
		id := now.UnixMilli()
		// ids are creation timestamps; nudge past the newest entry so two
		// submissions in the same millisecond stay unique
		if len(messages) > 0 && id <= messages[0].ID {
			id = messages[0].ID + 1
		}
		created = models.Message{
			ID:             id,
			Name:           name,
			Body:           body,
			Date:           now.Format(displayDateFormat),
			Timestamp:      now.UnixMilli(),
			SubmitterToken: submitterToken,
		}
		return append([]models.Message{created}, messages...), nil
	})
	if err != nil {
		return models.Message{}, "", err
	}

	zaplogger.Info("new message", zaplogger.Fields{"id": created.ID, "name": created.Name})
	return created.Public(), submitterToken, nil
}

// Update replaces the body of an existing message on behalf of the actor.
func (s *MessageService) Update(id int64, newBody string, actor Actor) (models.Message, error) {
	var updated models.Message
	err := s.repo.Mutate(func(messages []models.Message) ([]models.Message, error) {
		i := indexOf(messages, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.authorize(messages[i], actor); err != nil {
			return nil, err
		}

		newBody = strings.TrimSpace(newBody)
		if newBody == "" {
			return nil, &ValidationError{Reason: "Message is required"}
		}
		if utf8.RuneCountInString(newBody) > maxBodyLength {
			return nil, &ValidationError{Reason: "Message is too long (max 2000 characters)"}
		}

		messages[i].Body = newBody
		messages[i].Edited = true
		messages[i].EditedDate = s.now().Format(displayDateFormat)
		updated = messages[i]
		return messages, nil
	})
	if err != nil {
		return models.Message{}, err
	}

	zaplogger.Info("message updated", zaplogger.Fields{"id": id, "admin": actor.Admin})
	return updated.Public(), nil
}

// Delete removes an existing message on behalf of the actor.
func (s *MessageService) Delete(id int64, actor Actor) error {
	err := s.repo.Mutate(func(messages []models.Message) ([]models.Message, error) {
		i := indexOf(messages, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.authorize(messages[i], actor); err != nil {
			return nil, err
		}
		return append(messages[:i], messages[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	zaplogger.Info("message deleted", zaplogger.Fields{"id": id, "admin": actor.Admin})
	return nil
}

// authorize applies the mutation policy: an admin may act on any message; a
// submitter needs the matching capability token and a message still inside
// the edit window.
func (s *MessageService) authorize(m models.Message, actor Actor) error {
	if actor.Admin {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(actor.SubmitterToken), []byte(m.SubmitterToken)) != 1 {
		return ErrForbidden
	}
	if s.now().Sub(m.CreatedAt()) >= editWindow {
		return ErrWindowExpired
	}
	return nil
}

func indexOf(messages []models.Message, id int64) int {
	for i, m := range messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}
