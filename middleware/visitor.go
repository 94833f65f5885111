package middleware

import (
	"log"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/noticeboard/util"
)

// VisitorMiddleware logs every session. The board is public, so no key is
// ever turned away.
func VisitorMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := extractIP(s.RemoteAddr().String())
			mode := "tui"
			if len(s.Command()) > 0 {
				mode = "cli"
			}
			log.Printf("[SSH] Visitor %s from %s (%s)", visitorId(s.PublicKey()), ip, mode)
			util.LogPublicKey(s)
			h(s)
		}
	}
}

// visitorId is a short stable id derived from the public key
func visitorId(pk ssh.PublicKey) string {
	if pk == nil {
		return "anonymous"
	}
	return util.PkToHash(util.PublicKeyToString(pk))[:16]
}

// extractIP strips the port from a remote address. Bare IPv6 addresses
// have more than one colon and no brackets, so they are returned as is.
func extractIP(remoteAddr string) string {
	colonIndex := strings.LastIndex(remoteAddr, ":")
	if colonIndex == -1 {
		return remoteAddr
	}
	if strings.Count(remoteAddr, ":") == 1 || (colonIndex > 0 && remoteAddr[colonIndex-1] == ']') {
		return remoteAddr[:colonIndex]
	}
	return remoteAddr
}
