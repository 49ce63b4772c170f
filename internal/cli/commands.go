package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/appstash/appstash/internal/stash"
)

const usage = `usage: appstash [flags] <command> [args]

commands:
  save <entity> <json>    store a JSON value under the entity name
  load <entity>           print the stored value (JSON)
  remove <entity>         delete the entity
  exists <entity>         report whether the entity is stored
  list                    list entity names
  clear                   delete every key under the namespace
  export [file]           write an export bundle (stdout by default)
  import <file>           restore a previously exported bundle
  info                    print store usage counters
  metadata                print the namespace metadata record

flags:
  -n name    namespace (app name)
  -v ver     data-format version
  -b name    backend: memory, file, sqlite
  -s path    store path for file/sqlite backends
  -c file    JSON config file
`

// Run dispatches one command. args holds the positional arguments with
// flags already stripped (see flagx.Positional).
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "save":
		return a.cmdSave(ctx, rest)
	case "load":
		return a.cmdLoad(ctx, rest)
	case "remove":
		return a.cmdRemove(ctx, rest)
	case "exists":
		return a.cmdExists(ctx, rest)
	case "list":
		return a.cmdList(ctx)
	case "clear":
		return a.cmdClear(ctx)
	case "export":
		return a.cmdExport(ctx, rest)
	case "import":
		return a.cmdImport(ctx, rest)
	case "info":
		return a.cmdInfo(ctx)
	case "metadata":
		return a.cmdMetadata(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) cmdSave(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("save: expected <entity> <json>")
	}
	entity, raw := args[0], args[1]

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("save: value is not valid JSON: %w", err)
	}
	if !a.stash.Save(ctx, entity, value) {
		return fmt.Errorf("save: failed to store %q", entity)
	}
	fmt.Fprintf(a.out, "saved %s\n", entity)
	return nil
}

func (a *App) cmdLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("load: expected <entity>")
	}
	value := stash.Load[any](ctx, a.stash, args[0], nil)
	return a.printJSON(value)
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("remove: expected <entity>")
	}
	if !a.stash.Remove(ctx, args[0]) {
		return fmt.Errorf("remove: failed to remove %q", args[0])
	}
	fmt.Fprintf(a.out, "removed %s\n", args[0])
	return nil
}

func (a *App) cmdExists(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exists: expected <entity>")
	}
	fmt.Fprintf(a.out, "%t\n", a.stash.Exists(ctx, args[0]))
	return nil
}

func (a *App) cmdList(ctx context.Context) error {
	entities := a.stash.Entities(ctx)
	if len(entities) == 0 {
		fmt.Fprintln(a.out, "(no entities)")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(entities, "\n"))
	return nil
}

func (a *App) cmdClear(ctx context.Context) error {
	if !a.stash.Clear(ctx) {
		return fmt.Errorf("clear: failed")
	}
	fmt.Fprintln(a.out, "cleared")
	return nil
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	bundle := a.stash.Export(ctx)
	if bundle == nil {
		return fmt.Errorf("export: failed")
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if len(args) == 0 {
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(a.out, "exported %d records to %s\n", len(bundle.Data), args[0])
	return nil
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("import: expected <file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	var bundle stash.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("import: invalid bundle file: %w", err)
	}
	if !a.stash.Import(ctx, &bundle) {
		return fmt.Errorf("import: failed")
	}
	fmt.Fprintf(a.out, "imported %d records\n", len(bundle.Data))
	return nil
}

func (a *App) cmdInfo(ctx context.Context) error {
	return a.printJSON(a.stash.Info(ctx))
}

func (a *App) cmdMetadata(ctx context.Context) error {
	return a.printJSON(a.stash.Metadata(ctx))
}

func (a *App) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}
