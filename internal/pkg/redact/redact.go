// redact маскирует секреты в строках подключения перед записью в логи.
package redact

import (
	"net/url"
	"strings"
)

// Placeholder заменяет пароль в строке подключения.
const Placeholder = "xxxxx"

// URL маскирует пароль в userinfo строки подключения
// (postgres://, mongodb://, mongodb+srv://, redis://, http(s)://).
//
// Примеры:
//
//	"postgres://app:secret@db:5432/tenders" -> "postgres://app:xxxxx@db:5432/tenders"
//	"redis://:secret@cache:6379/0"          -> "redis://:xxxxx@cache:6379/0"
//	"postgres://db:5432/tenders"            -> без изменений
//
// Неразбираемая строка целиком заменяется на Placeholder: DSN в формате
// key=value может содержать password=... в любом месте.
func URL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Placeholder
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), Placeholder)
		}
	}

	q := u.Query()
	masked := false
	for key := range q {
		if isSecretParam(key) {
			q.Set(key, Placeholder)
			masked = true
		}
	}
	if masked {
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// isSecretParam - параметры запроса, которые несут секреты (например, password=, sslpassword=).
func isSecretParam(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "secret") || strings.Contains(k, "token")
}
