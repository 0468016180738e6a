package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver is satisfied by *net.Resolver.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func DomainOf(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}

func IsEmailDomainValid(email string) bool {
	return EmailDomainChecker(net.DefaultResolver)(email)
}

// EmailDomainChecker aceita o domínio se ele tiver MX ou, na falta, um A/AAAA.
func EmailDomainChecker(r Resolver) func(email string) bool {
	return func(email string) bool {
		domain, ok := DomainOf(email)
		if !ok {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}

		if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
			return true
		}

		return false
	}
}
