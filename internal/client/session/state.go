package session

// Status is the lifecycle state of the session.
type Status int

const (
	// StatusUnknown is the state before Initialize has read durable storage.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Identity describes the logged in user.
type Identity struct {
	UserID      string
	Username    string
	DisplayName string
}

// State is a snapshot of the session. Token and Identity are set only
// when Status is StatusAuthenticated.
type State struct {
	Status   Status
	Token    string
	Identity Identity
}

// IsAuthenticated reports whether Status is StatusAuthenticated.
func (s State) IsAuthenticated() bool { return s.Status == StatusAuthenticated }

// Keys under which the session is persisted.
const (
	KeyToken       = "authToken"
	KeyUserID      = "authUserId"
	KeyUsername    = "authUsername"
	KeyDisplayName = "authDisplayName"
)

// Keys lists every persisted session key.
var Keys = []string{KeyToken, KeyUserID, KeyUsername, KeyDisplayName}
