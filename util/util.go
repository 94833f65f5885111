package util

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/mattn/go-runewidth"
	gossh "golang.org/x/crypto/ssh"
)

//go:embed version.txt
var embeddedVersion string

func LogPublicKey(s ssh.Session) {
	fingerprint := "none"
	if pk := s.PublicKey(); pk != nil {
		fingerprint = gossh.FingerprintSHA256(pk)
	}
	log.Printf("%s@%s opened a new ssh-session (%s)", s.User(), s.RemoteAddr(), fingerprint)
}

func PublicKeyToString(s ssh.PublicKey) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(s)))
}

func PkToHash(pk string) string {
	h := sha256.New()
	h.Write([]byte(pk))
	return hex.EncodeToString(h.Sum(nil))
}

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

func PrettyPrint(i any) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}

// GetConfigDir returns ~/.config/noticeboard, creating it if needed
func GetConfigDir() (string, error) {
	home, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(home, Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// ResolveFilePath prefers a file in the working directory and falls back
// to the user config directory
func ResolveFilePath(filename string) string {
	if _, err := os.Stat(filename); err == nil {
		return filename
	}
	dir, err := GetConfigDir()
	if err != nil {
		return filename
	}
	return filepath.Join(dir, filename)
}

// TruncateToWidth cuts s to at most width terminal cells, adding an ellipsis.
// Newlines are folded into spaces so the result stays on one line.
func TruncateToWidth(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
