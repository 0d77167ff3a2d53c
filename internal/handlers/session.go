package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionCookie    = "outreach_session"
	flashCategoryKey = "flash_category"
	flashMessageKey  = "flash_message"
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Sessions wraps the cookie session store and its flash helpers.
type Sessions struct {
	store *session.Store
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		store: session.New(session.Config{
			Expiration:     ttl,
			KeyLookup:      "cookie:" + sessionCookie,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
}

// load returns the request's session. A fresh session is persisted at once
// and its cookie copied onto the request, so later loads in the same request
// resolve to the same ID.
func (s *Sessions) load(c *fiber.Ctx) (*session.Session, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, err
	}
	if !sess.Fresh() {
		return sess, nil
	}
	id := sess.ID()
	if err := sess.Save(); err != nil {
		return nil, err
	}
	c.Request().Header.SetCookie(sessionCookie, id)
	return s.store.Get(c)
}

// ID returns the session identifier.
func (s *Sessions) ID(c *fiber.Ctx) (string, error) {
	sess, err := s.load(c)
	if err != nil {
		return "", err
	}
	return sess.ID(), nil
}

// SetFlash replaces any pending flash message.
func (s *Sessions) SetFlash(c *fiber.Ctx, category, message string) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}
	sess.Set(flashCategoryKey, category)
	sess.Set(flashMessageKey, message)
	return sess.Save()
}

// PopFlash returns the pending flash message, if any, and clears it.
func (s *Sessions) PopFlash(c *fiber.Ctx) (*Flash, error) {
	sess, err := s.load(c)
	if err != nil {
		return nil, err
	}
	message, _ := sess.Get(flashMessageKey).(string)
	if message == "" {
		return nil, nil
	}
	category, _ := sess.Get(flashCategoryKey).(string)
	sess.Delete(flashCategoryKey)
	sess.Delete(flashMessageKey)
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return &Flash{Category: category, Message: message}, nil
}
