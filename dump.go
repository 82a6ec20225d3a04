package main

import (
	"context"
	"fmt"
	"io"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/pkg/errors"
)

const dumpDoc = `Minitwit API

Usage:
  minitwit-api          Serve the HTTP API.
  minitwit-api dump     Dump all messages and their authors to STDOUT.
  minitwit-api -h       Show this screen.`

const dumpTemplate = `{% for m in messages %}{{ m.id }},{{ m.posted_by }},{{ m.text }},{{ m.time }}
{% endfor %}`

// runCommand handles the non-server invocations. It reports whether args
// named a command it knows.
func runCommand(ctx context.Context, args []string, store Store, out io.Writer) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "-h", "--help", "help":
		fmt.Fprintln(out, dumpDoc)
		return true, nil
	case "dump":
		return true, dumpMessages(ctx, store, out)
	default:
		return false, errors.Errorf("unknown command %q\n\n%s", args[0], dumpDoc)
	}
}

// dumpMessages writes one "id,posted_by,text,time" line per message.
func dumpMessages(ctx context.Context, store Store, out io.Writer) error {
	messages, err := store.ListMessages(ctx)
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, map[string]interface{}{
			"id":        m.MessageID,
			"posted_by": m.PostedBy,
			"text":      m.MessageText,
			"time":      m.TimePostedEpoch,
		})
	}

	tpl, err := gonja.FromString(dumpTemplate)
	if err != nil {
		return errors.Wrap(err, "parse dump template")
	}
	data := exec.NewContext(map[string]interface{}{"messages": rows})
	return errors.Wrap(tpl.Execute(out, data), "render dump")
}
