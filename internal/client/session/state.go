package session

import "github.com/dmitrijs2005/gophchat/internal/client/models"

// State is an immutable snapshot of the session.
type State struct {
	IsLoggedIn           bool
	User                 *models.UserProfile
	IsLoadingInitialAuth bool
}

// Initial is the state of a freshly created store.
func Initial() State {
	return State{IsLoadingInitialAuth: true}
}

func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}
