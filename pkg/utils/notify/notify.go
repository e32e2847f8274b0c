package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	fcolor "github.com/fatih/color"
)

// Message types.
const (
	ErrorType MessageType = iota
	WarningType
	ActivityType
	GenerateType
	SuccessType
	InfoType
	TitleType
)

const defaultTitleEmoji = "ℹ️"

// MessageType selects the symbol and color of a message.
type MessageType int

// Message is a single notification.
type Message struct {
	Type    MessageType
	Content string
	// Timer adds a timing block after success messages when set.
	Timer timer.Timer
	// Emoji replaces the default title emoji for TitleType.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
	Args   []any
}

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	write(writer, ErrorType, format, args)
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	write(writer, WarningType, format, args)
}

// Activityf writes a progress message.
func Activityf(writer io.Writer, format string, args ...any) {
	write(writer, ActivityType, format, args)
}

// Generatef writes a message about a generated file.
func Generatef(writer io.Writer, format string, args ...any) {
	write(writer, GenerateType, format, args)
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	write(writer, SuccessType, format, args)
}

// SuccessWithTimerf writes a success message followed by the timer's stage and total durations.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof writes an informational message.
func Infof(writer io.Writer, format string, args ...any) {
	write(writer, InfoType, format, args)
}

// Titlef writes a stage title prefixed with emoji.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: format, Args: args, Emoji: emoji, Writer: writer})
}

func write(writer io.Writer, msgType MessageType, format string, args []any) {
	WriteMessage(Message{Type: msgType, Content: format, Args: args, Writer: writer})
}

// WriteMessage writes msg with the styling of its type.
// Continuation lines of multi-line content are indented under the first.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	style := styleFor(msg.Type)

	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = defaultTitleEmoji
		}

		report(style.color.Fprintf(msg.Writer, "%s %s\n", emoji, content))

		return
	}

	report(style.color.Fprintf(msg.Writer, "%s%s\n", style.symbol, indent(content, style.symbol)))

	if msg.Type == SuccessType && msg.Timer != nil {
		total, stage := msg.Timer.GetTiming()

		report(style.color.Fprintf(msg.Writer, "⏲ current: %s\n", stage))
		report(style.color.Fprintf(msg.Writer, "  total:  %s\n", total))
	}
}

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) style {
	switch msgType {
	case ErrorType:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case GenerateType:
		return style{symbol: "✚ ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return style{color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

// report prints write failures to stderr; notifications never fail a command.
func report(_ int, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	pad := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
