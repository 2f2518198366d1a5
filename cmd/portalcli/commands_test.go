package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

// Register and login both hand their response user to the session
// store; the register response embeds the user by value.
func TestSessionUserFromResponses(t *testing.T) {
	registered := dto.RegisterResponse{
		Token: "tok-1",
		User: dto.UserResponse{
			ID:        "user-1",
			FirstName: "Aisha",
			LastName:  "Bekova",
			Email:     "aisha@example.com",
			Role:      models.UserRoleCandidate,
		},
	}

	user := sessionUser(&registered.User)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Aisha", user.FirstName)
	assert.Equal(t, "Bekova", user.LastName)
	assert.Equal(t, "aisha@example.com", user.Email)
	assert.Equal(t, models.UserRoleCandidate, user.Role)

	loggedIn := dto.LoginResponse{Token: "tok-2", User: registered.User}
	assert.Equal(t, user, sessionUser(&loggedIn.User))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", contentTypeFor("/tmp/resume.pdf"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("/tmp/resume.unknownext"))
}
