package safety

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/temirov/dumpo/internal/utils"
)

const (
	minimumSecretValueLength = 8
	minimumSecretEntropy     = 3.0
)

var (
	secretFileNames = map[string]struct{}{
		".env":       {},
		"id_rsa":     {},
		"id_dsa":     {},
		"id_ecdsa":   {},
		"id_ed25519": {},
	}
	secretNamePrefixes = []string{".env."}
	secretExtensions   = map[string]struct{}{
		"env": {}, "pem": {}, "key": {}, "p12": {}, "pfx": {}, "jks": {}, "keystore": {},
	}

	// credential shapes that are secrets whatever their surroundings
	secretContentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`-----BEGIN[ A-Z0-9]*PRIVATE KEY( BLOCK)?-----`),
		regexp.MustCompile(`\b(?:A3T[A-Z0-9]|AKIA|ASIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA)[A-Z0-9]{16}\b`),
		regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
		regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{22,}\b`),
		regexp.MustCompile(`\bxox[abposr]-[A-Za-z0-9-]{10,}`),
		regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`),
		regexp.MustCompile(`\b[sr]k_live_[0-9A-Za-z]{16,}\b`),
	}

	// key=value, key: value and key := value assignments whose key names a
	// credential; the value is captured quoted or bare
	secretAssignmentPattern = regexp.MustCompile(
		`(?i)[A-Za-z0-9_.\-]*(?:api[_\-]?key|secret|passw(?:or)?d|token|access[_\-]?key|private[_\-]?key)[A-Za-z0-9_.\-]*["']?\s*(?::=|[:=])\s*(?:"([^"\s]{8,})"|'([^'\s]{8,})'|([^\s"',;()\[\]{}]{8,}))`,
	)

	// snake_case, kebab-case, SCREAMING_CASE and dotted member references
	identifierValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-z][a-z0-9]*(?:[_\-.][a-z0-9]+)+$`),
		regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`),
		regexp.MustCompile(`^[A-Za-z_]+(?:\.[A-Za-z_]+)+$`),
	}
)

// HasSecretName reports whether the file name alone marks the file as a credential store.
func HasSecretName(relativePath string) bool {
	name := strings.ToLower(utils.BaseName(relativePath))
	if _, denied := secretFileNames[name]; denied {
		return true
	}
	for _, prefix := range secretNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	_, denied := secretExtensions[extensionOf(name)]
	return denied
}

// ContainsSecret reports whether content matches a known credential shape or a
// credential assignment with a high-entropy value.
func ContainsSecret(content []byte) bool {
	for _, pattern := range secretContentPatterns {
		if pattern.Match(content) {
			return true
		}
	}
	for _, submatch := range secretAssignmentPattern.FindAllSubmatch(content, -1) {
		if isHighEntropyValue(assignedValue(submatch)) {
			return true
		}
	}
	return false
}

// assignedValue returns whichever of the quoted or bare value groups matched.
func assignedValue(submatch [][]byte) string {
	for _, group := range submatch[1:] {
		if len(group) > 0 {
			return string(group)
		}
	}
	return ""
}

func looksLikeIdentifier(value string) bool {
	for _, pattern := range identifierValuePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func isHighEntropyValue(value string) bool {
	if len(value) < minimumSecretValueLength {
		return false
	}
	hasLetter := strings.ContainsFunc(value, func(character rune) bool {
		return character >= 'a' && character <= 'z' || character >= 'A' && character <= 'Z'
	})
	hasDigitOrSymbol := strings.ContainsFunc(value, func(character rune) bool {
		return !unicode.IsLetter(character)
	})
	if !hasLetter || !hasDigitOrSymbol || looksLikeIdentifier(value) {
		return false
	}
	return shannonEntropy(value) >= minimumSecretEntropy
}

// shannonEntropy returns the entropy of value in bits per byte.
func shannonEntropy(value string) float64 {
	if value == "" {
		return 0
	}
	frequencies := make(map[byte]int, len(value))
	for index := 0; index < len(value); index++ {
		frequencies[value[index]]++
	}
	length := float64(len(value))
	entropy := 0.0
	for _, count := range frequencies {
		probability := float64(count) / length
		entropy -= probability * math.Log2(probability)
	}
	return entropy
}
