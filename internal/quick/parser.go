// Package quick parses the chat-style quick commands: /task, /start,
// /stop and /help, plus bare text shorthand for task creation.
package quick

import (
	"regexp"
	"strings"
)

// Actions a parsed command can request.
const (
	ActionCreateTask = "create_task"
	ActionStartTask  = "start_task"
	ActionStopAll    = "stop_all"
	ActionHelp       = "help"
	ActionUnknown    = "unknown"
	ActionMessage    = "message"
)

// Command is the result of parsing one quick input line.
type Command struct {
	Action   string
	Name     string
	Category string
	Query    string
	Raw      string
}

var categoryRe = regexp.MustCompile(`@(\S+)`)

// Parse interprets a quick input line. Slash commands are dispatched
// by name; anything else is treated as a task-creation shorthand
// filed under the "quick" category. An @word anywhere in the text
// names the category.
func Parse(input string) Command {
	trimmed := strings.TrimSpace(input)

	if strings.HasPrefix(trimmed, "/") {
		parts := strings.Fields(trimmed)
		command := strings.ToLower(parts[0])
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, parts[0]))

		switch command {
		case "/start":
			if rest == "" {
				return Command{Action: ActionUnknown, Raw: trimmed}
			}
			return Command{Action: ActionStartTask, Query: rest, Raw: trimmed}
		case "/stop":
			return Command{Action: ActionStopAll, Raw: trimmed}
		case "/help":
			return Command{Action: ActionHelp, Raw: trimmed}
		case "/task":
			name, category := splitCategory(rest)
			if name == "" {
				return Command{Action: ActionUnknown, Raw: trimmed}
			}
			return Command{Action: ActionCreateTask, Name: name, Category: category, Raw: trimmed}
		default:
			return Command{Action: ActionUnknown, Raw: trimmed}
		}
	}

	name, category := splitCategory(trimmed)
	if category == "" {
		category = "quick"
	}
	if name == "" {
		return Command{Action: ActionMessage, Raw: trimmed}
	}
	return Command{Action: ActionCreateTask, Name: name, Category: category, Raw: trimmed}
}

func splitCategory(text string) (name, category string) {
	if m := categoryRe.FindStringSubmatch(text); m != nil {
		category = m[1]
	}
	name = strings.TrimSpace(categoryRe.ReplaceAllString(text, ""))
	return name, category
}
