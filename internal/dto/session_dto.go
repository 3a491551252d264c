package dto

// LastActiveFormat renders session timestamps the way the web client displays them.
const LastActiveFormat = "2/1/2006, 3:04:05 pm"

// SessionResponse is the human-facing shape of one session row: derived status plus
// device and location summaries.
type SessionResponse struct {
	ID         string `json:"id"`
	Device     string `json:"device"`
	Location   string `json:"location"`
	IP         string `json:"ip"`
	LastActive string `json:"lastActive"`
	Status     string `json:"status"`

	// Current is set only on self-service listings, on the row matching the
	// caller's own refresh token.
	Current *bool `json:"current,omitempty"`
}

// AdminUserResponse is one row of the admin user listing: the user plus a summary
// of their sessions (derived status, latest activity, row count).
type AdminUserResponse struct {
	ID            string `json:"id"`
	Fullname      string `json:"fullname"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	LastActive    string `json:"lastActive"`
	SessionsCount int    `json:"sessionsCount"`
}
