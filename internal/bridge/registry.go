package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Invoker runs a command with its raw JSON arguments and returns a value to
// encode as the response result.
type Invoker func(ctx context.Context, args json.RawMessage) (any, error)

type registeredCommand struct {
	name   string
	schema *jsonschema.Schema
	invoke Invoker
}

// Registry maps wire command names and their aliases to invokers.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*registeredCommand
	aliases  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: map[string]*registeredCommand{},
		aliases:  map[string]string{},
	}
}

// Register binds name and aliases to invoke. A non-empty schema is compiled
// as a JSON Schema (draft 2020-12) and checked against every call's
// arguments before invoke runs.
func (r *Registry) Register(name, schema string, invoke Invoker, aliases ...string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCommandNameRequired
	}
	if invoke == nil {
		return fmt.Errorf("%w: %s", ErrInvokerRequired, name)
	}

	compiled, err := compileSchema(name, schema)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{name}, aliases...)
	for _, key := range keys {
		if r.taken(strings.TrimSpace(key)) {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
		}
	}

	r.commands[name] = &registeredCommand{name: name, schema: compiled, invoke: invoke}
	for _, alias := range aliases {
		if alias = strings.TrimSpace(alias); alias != "" && alias != name {
			r.aliases[alias] = name
		}
	}
	return nil
}

func (r *Registry) taken(key string) bool {
	if key == "" {
		return false
	}
	if _, ok := r.commands[key]; ok {
		return true
	}
	_, ok := r.aliases[key]
	return ok
}

// Resolve returns the canonical command name for name or an alias.
func (r *Registry) Resolve(name string) (string, bool) {
	cmd := r.lookup(name)
	if cmd == nil {
		return "", false
	}
	return cmd.name, true
}

// Names lists the canonical command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invoke validates args against the command schema and runs the command.
// Missing or null arguments are treated as an empty object.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	cmd := r.lookup(name)
	if cmd == nil {
		return nil, unknownCommandError(name)
	}

	args = normalizeArgs(args)
	if err := validateArgs(cmd.schema, args); err != nil {
		return nil, invalidArgumentsError(err)
	}
	return cmd.invoke(ctx, args)
}

func (r *Registry) lookup(name string) *registeredCommand {
	name = strings.TrimSpace(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.commands[canonical]
	}
	return nil
}

// DecodeArgs unmarshals raw command arguments into T. Decoding failures are
// reported as INVALID_ARGUMENTS.
func DecodeArgs[T any](args json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(normalizeArgs(args), &out); err != nil {
		return out, invalidArgumentsError(fmt.Errorf("%w: %v", ErrInvalidArguments, err))
	}
	return out, nil
}
