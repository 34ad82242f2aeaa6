package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const instanceKey = "form_instance"

// Notice is a transient notification shown once on the next page view.
type Notice struct {
	Level   string `json:"level"` // success or error
	Message string `json:"message"`
}

func flash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(Notice{Level: level, Message: message})
	if err := session.Save(); err != nil {
		log.Warnf("Failed to save session: %v", err)
	}
}

// popNotices returns and clears the pending notifications.
func popNotices(c *gin.Context) []Notice {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		log.Warnf("Failed to save session: %v", err)
	}

	notices := make([]Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}

// formInstance identifies the visitor's copy of the site's forms, so a
// double submit of the same form is rejected while the first one runs.
func formInstance(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(instanceKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Set(instanceKey, id)
	if err := session.Save(); err != nil {
		log.Warnf("Failed to save session: %v", err)
	}
	return id
}
