package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailFormatValid aceita vazio: e-mail do cliente é opcional.
func IsEmailFormatValid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid consulta MX/A do domínio. Usado só no cadastro do console.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
