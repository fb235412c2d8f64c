package parser

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Language represents a supported programming language for parsing.
type Language int

const (
	// LanguagePHP represents PHP (.php, .phtml files)
	LanguagePHP Language = iota
	// LanguageUnknown represents an unsupported language
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguagePHP:
		return "php"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the programming language from a file path.
// Returns LanguageUnknown if the file extension is not recognized.
func DetectLanguage(filePath string) Language {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".php", ".phtml":
		return LanguagePHP
	default:
		return LanguageUnknown
	}
}

// HasOpenTag reports whether source contains a "<?php" or "<?=" tag.
//
// The full PHP grammar treats everything outside tags as inline HTML, so
// sources without a tag must be parsed with the PHP-only grammar.
func HasOpenTag(source []byte) bool {
	return bytes.Contains(source, []byte("<?php")) ||
		bytes.Contains(source, []byte("<?PHP")) ||
		bytes.Contains(source, []byte("<?="))
}
