package retro

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdeaValidate(t *testing.T) {
	tests := []struct {
		name    string
		idea    Idea
		wantErr string
	}{
		{
			name: "valid idea without category",
			idea: Idea{ID: 666, Body: "redundant tests", UserID: 1},
		},
		{
			name: "valid idea with category",
			idea: Idea{ID: 1, Body: "standups ran long", UserID: 2, Category: CategorySad},
		},
		{
			name:    "rejects zero ID",
			idea:    Idea{ID: 0, Body: "no id"},
			wantErr: "invalid idea ID",
		},
		{
			name:    "rejects unknown category",
			idea:    Idea{ID: 3, Category: Category("angry")},
			wantErr: "invalid category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.idea.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUserValidate(t *testing.T) {
	t.Run("accepts positive ID", func(t *testing.T) {
		u := User{ID: 1, Token: "abc", IsFacilitator: true}
		assert.NoError(t, u.Validate())
	})

	t.Run("rejects negative ID", func(t *testing.T) {
		u := User{ID: -4}
		err := u.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid user ID")
	})
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID(uuid.New().String()))
	assert.ErrorContains(t, ValidateSessionID(""), "cannot be empty")
	assert.ErrorContains(t, ValidateSessionID("lobby"), "not a valid UUID")
}

func TestSessionTopic(t *testing.T) {
	assert.Equal(t, "retro:abc", SessionTopic("abc"))
}
