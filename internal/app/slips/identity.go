package slips

const guestPrefix = "guest:"

// Identity is who is acting on a slip. Guests build slips under a session but must log in to submit.
type Identity struct {
	UserID    string
	SessionID string
}

// Key is the slip owner key: the user ID, or a guest key derived from the session.
func (i Identity) Key() string {
	if i.UserID != "" {
		return i.UserID
	}
	if i.SessionID != "" {
		return guestPrefix + i.SessionID
	}
	return ""
}

// guestKey is the session's guest key when a logged-in user may still own a guest slip.
func (i Identity) guestKey() string {
	if i.UserID == "" || i.SessionID == "" {
		return ""
	}
	return guestPrefix + i.SessionID
}
