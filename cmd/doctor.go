package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/nibzard/todolist-go/internal/store"
	"github.com/nibzard/todolist-go/internal/todo"
)

// doctorCommand checks config, store reachability and the stored task list.
func (a *app) doctorCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todolist doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Show where each config value came from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.stdout
	cfg := a.cfg

	fmt.Fprintln(w, "todolist doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config files (defaults)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(w, "  ✅ Read %s\n", f)
	}
	if *verbose {
		fields := make([]string, 0, len(a.cws.Sources))
		for field := range a.cws.Sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "     %-18s %s\n", field, a.cws.Sources[field])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Store: %s (key %q)\n", cfg.Store.Kind, cfg.Store.Key)
	if location := a.storeLocation(); location != "" {
		fmt.Fprintf(w, "  Location: %s\n", location)
	}
	if !a.checkStore(ctx) {
		allOK = false
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkStore opens the store and validates the stored list.
func (a *app) checkStore(ctx context.Context) bool {
	w := a.stdout
	st, err := store.Open(ctx, a.cfg.StoreOptions())
	if err != nil {
		fmt.Fprintf(w, "  ❌ Open: %v\n", err)
		return false
	}
	defer st.Close()
	fmt.Fprintln(w, "  ✅ Reachable")

	data, found, err := st.Get(ctx, a.cfg.Store.Key)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read: %v\n", err)
		return false
	}
	if !found {
		fmt.Fprintln(w, "  ✅ No tasks stored yet")
		return true
	}

	list, err := todo.Decode(data)
	if err != nil {
		var malformed *todo.MalformedStoreDataError
		if errors.As(err, &malformed) {
			fmt.Fprintf(w, "  ❌ Stored tasks are malformed and will be discarded: %v\n", malformed)
		} else {
			fmt.Fprintf(w, "  ❌ Stored tasks: %v\n", err)
		}
		return false
	}
	fmt.Fprintf(w, "  ✅ %d stored tasks\n", list.Len())
	return true
}

func (a *app) storeLocation() string {
	switch a.cfg.Store.Kind {
	case store.KindFile:
		return a.cfg.Store.Path
	case store.KindSQLite:
		return a.cfg.Store.SQLitePath
	case store.KindNATS:
		if a.cfg.Store.NATSURL != "" {
			return a.cfg.Store.NATSURL + " bucket " + a.cfg.Store.NATSBucket
		}
		return "embedded at " + a.cfg.NATSDir() + " bucket " + a.cfg.Store.NATSBucket
	default:
		return ""
	}
}
