package main

import (
	"fmt"
	"io"

	"weathercard/controller"
)

// terminal is the notifier and alert cue of the interactive client
type terminal struct {
	out    io.Writer
	errOut io.Writer
}

// Notify prints the message on stderr. A terminal line cannot expire, so the
// duration is ignored.
func (t *terminal) Notify(n controller.Notification) {
	fmt.Fprintf(t.errOut, "✖ %s\n", n.Message)
}

// Play rings the terminal bell
func (t *terminal) Play() {
	fmt.Fprint(t.errOut, "\a")
}

func (t *terminal) prompt(snap controller.Snapshot) {
	box := "[ ]"
	if snap.Remember {
		box = "[x]"
	}
	if snap.Query != "" {
		fmt.Fprintf(t.out, "%s search (%s)> ", box, snap.Query)
		return
	}
	fmt.Fprintf(t.out, "%s search> ", box)
}
