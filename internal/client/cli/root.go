package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if s := a.store.Session(); s.Authenticated {
		parts = append(parts, s.User.Email)
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s) ", strings.Join(parts, " "))
}

// Root restores saved state, starts the token watcher and runs the REPL
// until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Space Health Navigator (type 'help' for commands)")

	a.restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.config.TokenCheckInterval > 0 {
		go a.StartTokenWatcher(watchCtx, a.config.TokenCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
