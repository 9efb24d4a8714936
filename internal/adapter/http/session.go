package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const sessionUserKey = "user_id"

// Sessions maps opaque session cookies to authenticated user identities.
// It is the only piece that knows about session state; identities themselves
// stay plain records.
type Sessions struct {
	store *session.Store
}

func NewSessions() *Sessions {
	return &Sessions{store: session.New(session.Config{
		KeyLookup:      "cookie:cv_session",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})}
}

// Establish binds the user id to the request's session.
func (s *Sessions) Establish(c *fiber.Ctx, userID uuid.UUID) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID.String())
	return sess.Save()
}

// End destroys the request's session.
func (s *Sessions) End(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// CurrentUser returns the authenticated user id, or false when the request
// carries no valid session.
func (s *Sessions) CurrentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	sess, err := s.store.Get(c)
	if err != nil {
		return uuid.Nil, false
	}
	raw, _ := sess.Get(sessionUserKey).(string)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireAuth guards a route: unauthenticated requests are redirected to the
// login form, authenticated ones get their user id stored in locals.
func (s *Sessions) RequireAuth(c *fiber.Ctx) error {
	id, ok := s.CurrentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	c.Locals(localUserID, id)
	return c.Next()
}

const localUserID = "userID"

// authedUser reads the user id placed in locals by RequireAuth.
func authedUser(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}
