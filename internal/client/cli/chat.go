package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/healthnav/internal/client/services"
)

// Chat runs a conversation with the assistant until the user sends an
// empty line.
func (a *App) Chat(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	fmt.Fprintln(a.out, services.Disclaimer)

	greeting, err := a.chat.Start(ctx)
	if err != nil {
		a.reportError("Could not reach the assistant", err)
		return err
	}
	fmt.Fprintf(a.out, "AIHA: %s\n", greeting.Text)
	fmt.Fprintln(a.out, "(send an empty message to leave the chat)")

	for ctx.Err() == nil {
		text, err := GetSimpleText(a.reader, "You", a.out)
		if errors.Is(err, io.EOF) || (err == nil && text == "") {
			return nil
		}
		if err != nil {
			return err
		}

		reply, err := a.chat.Send(ctx, text)
		if err != nil {
			a.reportError("AIHA", err)
			continue
		}
		fmt.Fprintf(a.out, "AIHA: %s\n", reply.Text)
	}
	return ctx.Err()
}
