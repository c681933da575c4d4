package chat

import "fmt"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message replayed by the client. The server keeps no
// conversation state; the full history arrives with every request.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Validate rejects roles outside the user/assistant pair.
func (t Turn) Validate() error {
	switch t.Role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown role %q", t.Role)
	}
}
