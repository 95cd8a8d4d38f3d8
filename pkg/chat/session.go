package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"mercator-hq/chatifier/pkg/config"
	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/logging"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
	"mercator-hq/chatifier/pkg/telemetry/tracing"
)

// userPrompt is the input prompt. It must stay free of escape sequences;
// the line editor rejects prompts containing control characters.
const userPrompt = "You> "

// Options configures a Session.
type Options struct {
	// Reader supplies user input. Required.
	Reader LineReader

	// Out receives the conversation. Defaults to os.Stdout.
	Out io.Writer

	// PlainText disables markdown rendering and colors.
	PlainText bool

	// WordWrap is the markdown wrap width (config.DefaultWordWrap when zero).
	WordWrap int

	// Metrics receives exchange counters. May be nil.
	Metrics *metrics.Collector
}

// Session is one interactive conversation with a provider client. It is
// not safe for concurrent use; exchanges run one at a time.
type Session struct {
	id      string
	client  providers.Client
	reader  LineReader
	out     io.Writer
	render  *renderer
	metrics *metrics.Collector
}

// NewSession creates a session around client.
func NewSession(client providers.Client, opts Options) *Session {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = config.DefaultWordWrap
	}

	return &Session{
		id:      uuid.NewString(),
		client:  client,
		reader:  opts.Reader,
		out:     out,
		render:  newRenderer(opts.PlainText, wrap),
		metrics: opts.Metrics,
	}
}

// ID returns the session identifier attached to logs and spans.
func (s *Session) ID() string {
	return s.id
}

// Run prints the welcome panel and reads input until /exit, end of input,
// Ctrl-C at the prompt or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	ctx = logging.WithSession(ctx, s.id)
	ctx = logging.WithProvider(ctx, s.client.Provider())

	slog.InfoContext(ctx, "chat session started", "base_url", s.client.Config().BaseURL)
	defer func() {
		slog.InfoContext(ctx, "chat session ended", "turns", len(s.client.History())/2)
	}()

	s.println(s.render.panel(s.welcome()))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.reader.Prompt(userPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
				s.println("")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.reader.AppendHistory(line)

		if !s.Handle(ctx, line) {
			return nil
		}
	}
}

// Handle processes one line of input and reports whether the session
// continues.
func (s *Session) Handle(ctx context.Context, line string) bool {
	if strings.HasPrefix(line, "/") {
		return s.command(ctx, line)
	}
	s.exchange(ctx, line)
	return true
}

func (s *Session) exchange(ctx context.Context, text string) {
	model := s.client.Config().Model
	ctx = logging.WithModel(ctx, model)

	ctx, span := tracing.StartSpan(ctx, "chat.exchange", tracing.ProviderAttributes(s.client.Provider(), model)...)
	defer span.End()
	tracing.SetSessionAttribute(span, s.id)

	reply, err := s.client.SendMessage(ctx, text)
	s.metrics.RecordExchange(s.client.Provider(), modelLabel(model), outcomeOf(err))
	tracing.SetStatus(span, err)

	if err != nil {
		slog.WarnContext(ctx, "message failed", "error", err)
		s.printError(err)
		return
	}

	s.println(s.render.style(assistantStyle, "Assistant:"))
	s.println(s.render.reply(reply))
	s.println("")
}

func (s *Session) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/exit", "/quit":
		s.println(s.render.style(infoStyle, "Goodbye."))
		return false

	case "/clear":
		s.client.ClearHistory()
		s.println(s.render.style(infoStyle, "Conversation cleared."))

	case "/help":
		s.println(s.render.panel(helpText))

	case "/models":
		s.listModels(ctx)

	case "/model":
		if arg == "" {
			s.println(s.render.style(infoStyle, "Current model: "+displayModel(s.client.Config().Model)))
			break
		}
		s.client.SetModel(arg)
		slog.DebugContext(ctx, "model changed", "model", arg)
		s.println(s.render.style(infoStyle, "Model set to "+arg+"."))

	default:
		s.println(s.render.style(errorStyle, "Unknown command "+name+". Type /help for the list."))
	}
	return true
}

func (s *Session) listModels(ctx context.Context) {
	models := s.client.ListModels(ctx)
	if len(models) == 0 {
		s.println(s.render.style(infoStyle, "This endpoint does not list models."))
		return
	}

	current := s.client.Config().Model
	var sb strings.Builder
	sb.WriteString("Available models:\n")
	for _, m := range models {
		marker := "  "
		if m == current {
			marker = "* "
		}
		sb.WriteString(marker + m)
		if pretty := providers.FormatModelName(m); pretty != m {
			sb.WriteString(" (" + pretty + ")")
		}
		sb.WriteString("\n")
	}
	s.println(strings.TrimRight(sb.String(), "\n"))
}

func (s *Session) welcome() string {
	cfg := s.client.Config()
	return fmt.Sprintf("chatifier: %s at %s\nmodel: %s\nType /help for commands, /exit to quit.",
		s.client.Provider(), cfg.BaseURL, displayModel(cfg.Model))
}

func (s *Session) printError(err error) {
	msg := "Error: " + err.Error()
	if providers.IsAuthFailure(err) {
		msg += "\nThe credential was rejected; restart with --token."
	}
	s.println(s.render.style(errorStyle, msg))
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}

const helpText = `Commands:
  /help           show this help
  /clear          forget the conversation so far
  /models         list the models the endpoint offers
  /model [name]   show or change the model
  /exit, /quit    leave`

func displayModel(model string) string {
	if model == "" {
		return "(provider default)"
	}
	return model
}

func modelLabel(model string) string {
	if model == "" {
		return "default"
	}
	return model
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	var connErr *providers.ConnectivityError
	switch {
	case providers.IsAuthFailure(err):
		return metrics.OutcomeAuth
	case errors.As(err, &connErr):
		return metrics.OutcomeUnreachable
	default:
		return metrics.OutcomeError
	}
}
