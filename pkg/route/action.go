package route

import (
	"fmt"
	"strings"
)

// ActionRef is a parsed "Namespace\Type@member" action string.
type ActionRef struct {
	Action    string `json:"action"`
	Namespace string `json:"namespace,omitempty"`
	Type      string `json:"type"`
	Member    string `json:"member"`
}

// FQN returns the fully qualified type name without a leading separator.
func (a ActionRef) FQN() string {
	if a.Namespace == "" {
		return a.Type
	}
	return a.Namespace + `\` + a.Type
}

// ActionParseError reports an action string that is not Type@member.
type ActionParseError struct {
	Action string
}

func (e *ActionParseError) Error() string {
	return fmt.Sprintf("invalid controller action format: %s", e.Action)
}

// ParseAction splits an action at its single "@". The type name is the text
// after the last namespace separator.
func ParseAction(action string) (ActionRef, error) {
	parts := strings.Split(action, "@")
	if len(parts) != 2 {
		return ActionRef{}, &ActionParseError{Action: action}
	}

	class := strings.TrimSpace(parts[0])
	member := strings.TrimSpace(parts[1])

	ref := ActionRef{Action: action, Type: class, Member: member}
	if i := strings.LastIndex(class, `\`); i >= 0 {
		ref.Namespace = strings.TrimPrefix(class[:i], `\`)
		ref.Type = class[i+1:]
	}
	if ref.Type == "" || ref.Member == "" {
		return ActionRef{}, &ActionParseError{Action: action}
	}
	return ref, nil
}
