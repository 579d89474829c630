package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_UnmarshalJSON_Aliases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want UserProfile
	}{
		{
			name: "canonical",
			in:   `{"id":"u1","name":"Ann","email":"ann@x.io","isEmailVerified":true}`,
			want: UserProfile{ID: "u1", Name: "Ann", Email: "ann@x.io", IsEmailVerified: true},
		},
		{
			name: "mongo id and account flag",
			in:   `{"_id":"65f","name":"Bob","isAccountVerified":true}`,
			want: UserProfile{ID: "65f", Name: "Bob", IsEmailVerified: true},
		},
		{
			name: "userId",
			in:   `{"userId":"42","email":"c@x.io"}`,
			want: UserProfile{ID: "42", Email: "c@x.io"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got UserProfile
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserProfile_CloneIsIndependent(t *testing.T) {
	u := &UserProfile{ID: "1", Name: "Ann"}
	c := u.Clone()
	c.Name = "Changed"
	assert.Equal(t, "Ann", u.Name)

	var nilUser *UserProfile
	assert.Nil(t, nilUser.Clone())
}

func TestUserProfile_String(t *testing.T) {
	assert.Equal(t, "Ann <ann@x.io>", (&UserProfile{Name: "Ann", Email: "ann@x.io"}).String())
	assert.Equal(t, "ann@x.io", (&UserProfile{Email: "ann@x.io"}).String())
	var u *UserProfile
	assert.Equal(t, "<anonymous>", u.String())
}
