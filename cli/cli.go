package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/deemkeen/noticeboard/domain"
	"github.com/deemkeen/noticeboard/util"
)

// Session interface represents the minimal session requirements for CLI operations
type Session interface {
	io.Reader
	io.Writer
}

// Database interface for CLI operations
type Database interface {
	ReadAnnouncements() ([]domain.Announcement, error)
	ReadAnnouncementById(id int) (*domain.Announcement, error)
}

// Handler processes CLI commands
type Handler struct {
	session  Session
	db       Database
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

// NewHandler creates a new CLI handler
func NewHandler(s Session, db Database, conf *util.AppConfig) *Handler {
	return &Handler{
		session:  s,
		db:       db,
		jsonMode: false,
		conf:     conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(args []string) error {
	// Parse global flags first
	args, h.jsonMode = parseGlobalFlags(args)

	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "list", "ls":
		return h.handleList(cmdArgs)
	case "show":
		return h.handleShow(cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// flags whose next argument is their value, never a global flag
var valueFlags = map[string]bool{
	"-q": true, "--query": true,
	"-p": true, "--priority": true,
	"--page": true,
}

// parseGlobalFlags extracts global flags like --json from args. Scanning
// stops at "--", and a flag value such as `-q -j` is left alone.
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			filtered = append(filtered, args[i:]...)
			return filtered, jsonMode
		case arg == "--json" || arg == "-j":
			jsonMode = true
		case valueFlags[arg] && i+1 < len(args):
			filtered = append(filtered, arg, args[i+1])
			i++
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

func (h *Handler) pageSize() int {
	if h.conf == nil {
		return 0
	}
	return h.conf.Conf.PageSize
}

func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		help := HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				listHelpCommand(),
				{
					Name:        "show",
					Description: "Show one announcement in full",
					Usage:       "show <id>",
				},
				{
					Name:        "help",
					Description: "Show this help message",
					Usage:       "help",
				},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		}
		h.output.JSON(help)
	} else {
		h.output.Println(util.Name + " CLI - school announcements over SSH")
		h.output.Println("")
		h.output.Println("Usage: ssh -p <port> <server> <command> [options]")
		h.output.Println("")
		h.output.Println("Commands:")
		h.output.Println("  list                  List announcements")
		h.output.Println("  list -q <text>        Search titles and content")
		h.output.Println("  list -p <priority>    Filter by priority (all, urgent, general)")
		h.output.Println("  list --page <N>       Show page N")
		h.output.Println("  show <id>             Show one announcement")
		h.output.Println("  help                  Show this help message")
		h.output.Println("")
		h.output.Println("Global flags:")
		h.output.Println("  --json, -j            Output in JSON format")
		h.output.Println("")
		h.output.Println("Examples:")
		h.output.Println("  ssh -p 23234 localhost list -q weather")
		h.output.Println("  ssh -p 23234 localhost list -p urgent -j")
		h.output.Println("  ssh -p 23234 localhost show 1")
	}
	return nil
}

func listHelpCommand() HelpCommand {
	return HelpCommand{
		Name:        "list",
		Description: "List announcements",
		Usage:       "list [-q <text>] [-p all|urgent|general] [--page <n>]",
		Flags: []string{
			"-q, --query <text>: only announcements whose title or content contains text",
			"-p, --priority <p>: all, urgent or general (default all)",
			"--page <n>: page to show (default 1)",
		},
	}
}
