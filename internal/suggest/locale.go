package suggest

import "strings"

// DefaultLocale is used when the system locale is degenerate (e.g. "C").
const DefaultLocale = "en-US"

var localeEnvKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// SystemLocale derives the request locale from environ, honouring the usual
// LC_ALL > LC_MESSAGES > LANG precedence.
func SystemLocale(environ []string) string {
	values := make(map[string]string, len(localeEnvKeys))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	for _, key := range localeEnvKeys {
		if v := strings.TrimSpace(values[key]); v != "" {
			return NormalizeLocale(v)
		}
	}
	return NormalizeLocale("")
}

// NormalizeLocale turns a POSIX locale name such as "pt_BR.UTF-8@euro" into
// "pt-BR". Names shorter than two characters become DefaultLocale.
func NormalizeLocale(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if strings.EqualFold(name, "POSIX") {
		name = "C"
	}
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) < 2 {
		return DefaultLocale
	}
	return name
}
