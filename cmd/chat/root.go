package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"deepti.app/relay/common/logger"
	"deepti.app/relay/core/config"
	"deepti.app/relay/internal/client"
	"deepti.app/relay/internal/model"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		relayURL   string
		noGreeting bool
	)

	cmd := &cobra.Command{
		Use:          "chat",
		Short:        "Talk to Deepti, the Telugu assistant, from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.ServiceTypeChat)
			if err != nil {
				return err
			}
			logger.SetupClient(cfg)

			if !cmd.Flags().Changed("relay-url") {
				relayURL = cfg.Client.RelayURL
			}

			var opts []client.Option
			if !noGreeting {
				opts = append(opts, client.WithGreeting(model.Greeting))
			}
			conv := client.NewConversation(client.NewHTTPTransport(relayURL, nil), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, conv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&relayURL, "relay-url", "http://localhost:8080", "base URL of the relay server (overrides RELAY_URL)")
	cmd.Flags().BoolVar(&noGreeting, "no-greeting", false, "start with an empty transcript")

	return cmd
}

// run reads lines from in and submits each one. Submissions happen in the
// background so input typed while a reply is pending is refused, not queued.
func run(ctx context.Context, conv *client.Conversation, in io.Reader, w io.Writer) error {
	out := &lockedWriter{w: w}
	events, cancel := conv.Subscribe()
	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		render(out, events)
	}()

	for _, m := range conv.Messages() {
		printMessage(out, m)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	inflight := make(chan struct{}, 1)
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			select {
			case inflight <- struct{}{}:
				go func(text string) {
					defer func() { <-inflight }()
					conv.Submit(ctx, text)
				}(line)
			default:
				fmt.Fprintln(out, busyNotice)
			}
		}
	}

	// Let a pending turn finish so its reply is printed.
	inflight <- struct{}{}
	cancel()
	<-rendered
	return nil
}

const busyNotice = "  (దీప్తి ఇంకా స్పందిస్తోంది, కొంచెం ఆగండి)"

func render(out io.Writer, events <-chan client.Event) {
	for ev := range events {
		switch ev.Type {
		case client.EventMessageAppended:
			if ev.Message.Role == model.RoleAssistant {
				printMessage(out, ev.Message)
			}
		case client.EventSendingChanged:
			if ev.Sending {
				fmt.Fprintln(out, "  ...")
			}
		}
	}
}

func printMessage(out io.Writer, m client.Message) {
	label := "మీ"
	if m.Role == model.RoleAssistant {
		label = "AI"
	}
	fmt.Fprintf(out, "[%s] %s\n", label, m.Content)
}

// lockedWriter serializes writes from the input loop and the event renderer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
