package tickerui

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

type copiedMsg struct {
	text string
	err  error
}

var (
	writeClipboard           = clipboard.WriteAll
	oscOut         io.Writer = os.Stderr
)

// copyCmd copies text to the system clipboard. Without one (ex: over ssh), it asks the terminal to do it with an OSC 52 sequence.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := writeClipboard(text)
		if err != nil {
			_, err = osc52.New(text).WriteTo(oscOut)
		}
		return copiedMsg{text: text, err: err}
	}
}
