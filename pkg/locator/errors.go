package locator

import "fmt"

// FileNotFoundError reports that no <Type>.php exists under the project root.
type FileNotFoundError struct {
	Type string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("Controller file not found: %s.php", e.Type)
}

// MethodNotFoundError reports that the controller file exists but does not
// declare the member.
type MethodNotFoundError struct {
	Type   string
	Member string
	File   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("Method '%s' not found in %s", e.Member, e.Type)
}
