package service

// Identity is who a request acts for. The zero value is a guest.
type Identity struct {
	UserID string
}

func Guest() Identity {
	return Identity{}
}

func (i Identity) IsGuest() bool {
	return i.UserID == ""
}
