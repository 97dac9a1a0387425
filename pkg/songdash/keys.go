package songdash

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// keyLabels maps pitch-class codes to display labels, starting at C.
var keyLabels = [12]string{
	"C", "C♯ / D♭", "D", "D♯ / E♭", "E", "F",
	"F♯ / G♭", "G", "G♯ / A♭", "A", "A♯ / B♭", "B",
}

// keyAliases resolves user-typed key names (ASCII or unicode accidentals,
// either spelling of an enharmonic pair) to labels.
var keyAliases = buildKeyAliases()

// KeyName returns the label for a pitch-class code. Codes outside 0..11
// have no label.
func KeyName(code int) (string, bool) {
	if code < 0 || code >= len(keyLabels) {
		return "", false
	}
	return keyLabels[code], true
}

// KeyNames returns all twelve labels in chromatic order.
func KeyNames() []string {
	out := make([]string, len(keyLabels))
	copy(out, keyLabels[:])
	return out
}

// ParseKeyName resolves input such as "C♯ / D♭", "C#", "db" or "Db" to its
// canonical label.
func ParseKeyName(input string) (string, bool) {
	s := norm.NFKC.String(strings.TrimSpace(input))
	if s == "" {
		return "", false
	}
	for _, label := range keyLabels {
		if s == label {
			return label, true
		}
	}
	label, ok := keyAliases[aliasKey(s)]
	return label, ok
}

func buildKeyAliases() map[string]string {
	aliases := make(map[string]string, 3*len(keyLabels))
	for _, label := range keyLabels {
		aliases[aliasKey(label)] = label
		for _, part := range strings.Split(label, "/") {
			aliases[aliasKey(part)] = label
		}
	}
	return aliases
}

func aliasKey(s string) string {
	s = strings.NewReplacer("♯", "#", "♭", "b", " ", "").Replace(norm.NFKC.String(s))
	return strings.ToLower(s)
}
