package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samanthauoviawe/chatbot-web-interface/chatapi"
	"github.com/samanthauoviawe/chatbot-web-interface/tui"
	"github.com/samanthauoviawe/chatbot-web-interface/widget"
	"go.uber.org/zap"
)

func main() {
	endpoint := flag.String("endpoint", chatapi.DefaultEndpoint, "Chat endpoint URL")
	timeout := flag.Duration("timeout", 0, "Request timeout (0 for none)")
	plain := flag.Bool("plain", false, "Line mode instead of the full-screen interface")
	markdown := flag.Bool("markdown", true, "Render bot messages as markdown")
	logFile := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	logger, err := newLogger(*logFile)
	if err != nil {
		fmt.Printf("Could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := chatapi.NewClient(*endpoint, *timeout, logger.Named("chatapi"))

	if *plain {
		runPlain(client, os.Stdin, os.Stdout, logger)
		return
	}

	m := tui.New(client, tui.Options{
		Endpoint: *endpoint,
		Markdown: *markdown,
		Visible:  true,
		Logger:   logger,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Error running chat client: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a no-op logger unless path is set, so logs never draw over the terminal UI
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// runPlain is a line-based chat loop over the same widget
func runPlain(sender widget.Sender, in io.Reader, out io.Writer, logger *zap.Logger) {
	var (
		w       *widget.ChatWidget
		mu      sync.Mutex
		printed int
	)

	// print bot messages as the log grows; user messages were typed in already
	printNew := func() {
		mu.Lock()
		defer mu.Unlock()
		msgs := w.State().Messages
		for _, msg := range msgs[printed:] {
			if msg.Type == widget.TypeBot {
				fmt.Fprintf(out, "%s: %s\n", msg.Author(), msg.Text)
			}
		}
		printed = len(msgs)
	}

	w = widget.New(sender,
		widget.WithVisible(true),
		widget.WithLogger(logger),
		widget.WithAnchor(widget.AnchorFunc(printNew)),
	)
	defer w.Unmount()

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			return
		}
		if err == io.EOF && input == "" {
			fmt.Fprintln(out, "\nGoodbye!")
			return
		}

		input = strings.TrimRight(input, "\r\n")
		if cmd := strings.ToLower(strings.TrimSpace(input)); cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		w.SetInput(input)
		if w.Submit() {
			w.Wait()
		}
	}
}
