package whatsapp

import "strings"

// CommandType enumerates the read-only queries the manager can send.
type CommandType string

const (
	CommandStock    CommandType = "stock"
	CommandModels   CommandType = "models"
	CommandBalances CommandType = "balances"
	CommandExpenses CommandType = "expenses"
	CommandSummary  CommandType = "summary"
	CommandHelp     CommandType = "help"
	CommandUnknown  CommandType = "unknown"
)

var commandTypes = map[string]CommandType{
	"stock":    CommandStock,
	"models":   CommandModels,
	"balances": CommandBalances,
	"expenses": CommandExpenses,
	"summary":  CommandSummary,
	"help":     CommandHelp,
}

// Command is a parsed query extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from a free-form text message. The leading
// slash is optional.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) == 0 {
		return cmd
	}

	if t, ok := commandTypes[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = t
	}
	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}

const helpText = "Factory commands:\n" +
	"/stock - raw material bags\n" +
	"/models - in production and finished units\n" +
	"/balances - what each account owes\n" +
	"/expenses - spend by category\n" +
	"/summary - everything above"
