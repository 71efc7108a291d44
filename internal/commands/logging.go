package commands

import (
	"strings"

	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/pkg/interfaces"
)

const defaultCommandModule = "core"

// CommandLogger scopes a logger to folio.commands.<module>. Modules are
// lowercased; blank modules log under "core".
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := commandModuleName(module)
	namespace := logging.CommandsModule + "." + name
	return logging.WithFields(logging.ModuleLogger(provider, namespace), map[string]any{
		"component":         "command",
		"command_module":    name,
		"command_namespace": namespace,
	})
}

func commandModuleName(module string) string {
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		return defaultCommandModule
	}
	return strings.Join(strings.Fields(name), "_")
}
