package types

// ToolInfo describes a known agent tool for display purposes: the label shown
// on a tool-call chip and the preference-ordered parameter keys used to pick
// the chip's primary parameter.
type ToolInfo struct {
	Name          string
	DisplayName   string
	PrimaryParams []string
}

// ToolRegistry provides centralized access to display metadata for known
// agent tools.
type ToolRegistry interface {
	// GetTool retrieves tool display metadata by internal name
	GetTool(name string) (*ToolInfo, bool)

	// ListTools returns all registered tool names
	ListTools() []string

	// RegisterTool adds or updates a tool entry
	RegisterTool(info *ToolInfo) error
}

// StandardToolRegistry is the default implementation of ToolRegistry.
type StandardToolRegistry struct {
	tools map[string]*ToolInfo
}

// NewStandardToolRegistry creates a registry pre-populated with the agent's
// built-in tool set.
func NewStandardToolRegistry() *StandardToolRegistry {
	registry := &StandardToolRegistry{
		tools: make(map[string]*ToolInfo),
	}
	registry.registerBuiltinTools()
	return registry
}

// GetTool retrieves tool display metadata by internal name
func (r *StandardToolRegistry) GetTool(name string) (*ToolInfo, bool) {
	info, exists := r.tools[name]
	return info, exists
}

// ListTools returns all registered tool names
func (r *StandardToolRegistry) ListTools() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// RegisterTool adds or updates a tool entry
func (r *StandardToolRegistry) RegisterTool(info *ToolInfo) error {
	if info == nil {
		return nil // Ignore nil entries
	}
	r.tools[info.Name] = info
	return nil
}

// registerBuiltinTools populates the registry with the tools the agent has
// shipped with, covering both current kebab-case and legacy snake_case names.
func (r *StandardToolRegistry) registerBuiltinTools() {
	builtins := []*ToolInfo{
		{Name: "execute-command", DisplayName: "Execute Command", PrimaryParams: []string{"command", "session_name"}},
		{Name: "create-file", DisplayName: "Create File", PrimaryParams: []string{"file_path"}},
		{Name: "full-file-rewrite", DisplayName: "Rewrite File", PrimaryParams: []string{"file_path"}},
		{Name: "str-replace", DisplayName: "Edit File", PrimaryParams: []string{"file_path"}},
		{Name: "delete-file", DisplayName: "Delete File", PrimaryParams: []string{"file_path"}},
		{Name: "read-file", DisplayName: "Read File", PrimaryParams: []string{"file_path"}},
		{Name: "web-search", DisplayName: "Web Search", PrimaryParams: []string{"query"}},
		{Name: "crawl-webpage", DisplayName: "Crawl Webpage", PrimaryParams: []string{"url"}},
		{Name: "browser-navigate", DisplayName: "Browse", PrimaryParams: []string{"url"}},
		{Name: "expose-port", DisplayName: "Expose Port", PrimaryParams: []string{"port"}},
		{Name: "deploy", DisplayName: "Deploy", PrimaryParams: []string{"name"}},
		{Name: "ask", DisplayName: "Ask", PrimaryParams: []string{"text"}},
		{Name: "complete", DisplayName: "Complete", PrimaryParams: []string{"text"}},
		// Legacy snake_case aliases still present in old threads
		{Name: "execute_command", DisplayName: "Execute Command", PrimaryParams: []string{"command", "session_name"}},
		{Name: "web_search", DisplayName: "Web Search", PrimaryParams: []string{"query"}},
		{Name: "create_file", DisplayName: "Create File", PrimaryParams: []string{"file_path"}},
	}

	for _, info := range builtins {
		r.tools[info.Name] = info
	}
}

// defaultToolRegistry is the package-level registry used when callers do not
// inject their own.
var defaultToolRegistry = NewStandardToolRegistry()

// DefaultToolRegistry returns the shared built-in registry.
func DefaultToolRegistry() ToolRegistry {
	return defaultToolRegistry
}
