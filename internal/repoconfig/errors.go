package repoconfig

import "fmt"

// RepoConfigError is the closed sum type of every way loading and merging
// plugin manifests can fail closed, mirroring the Rust
// `enum RepoConfigError` (original_source/.../repo_strict.rs,
// repo_import.rs, checks_merge.rs). Each variant is its own exported
// struct so callers can type-switch or errors.As on the specific failure,
// while Code() gives a stable string for logs and tests that don't want to
// import the concrete type.
type RepoConfigError interface {
	error
	Code() string
}

// InvalidPluginID reports a plugin.toml whose [plugin].id fails IDPattern.
type InvalidPluginID struct {
	PluginDir string
	ID        string
}

func (e *InvalidPluginID) Code() string { return "InvalidPluginId" }
func (e *InvalidPluginID) Error() string {
	return fmt.Sprintf("%s: plugin id %q does not match the required pattern", e.PluginDir, e.ID)
}

// DuplicatePluginID reports two plugin directories declaring the same id.
type DuplicatePluginID struct {
	ID         string
	FirstDir   string
	SecondDir  string
}

func (e *DuplicatePluginID) Code() string { return "DuplicatePluginId" }
func (e *DuplicatePluginID) Error() string {
	return fmt.Sprintf("plugin id %q declared by both %s and %s", e.ID, e.FirstDir, e.SecondDir)
}

// InvalidToolID reports a tool whose id fails IDPattern.
type InvalidToolID struct {
	PluginID string
	ToolID   string
}

func (e *InvalidToolID) Code() string { return "InvalidToolId" }
func (e *InvalidToolID) Error() string {
	return fmt.Sprintf("plugin %q: tool id %q does not match the required pattern", e.PluginID, e.ToolID)
}

// InvalidDescription reports a tool description outside [12,220] trimmed chars.
type InvalidDescription struct {
	PluginID string
	ToolID   string
}

func (e *InvalidDescription) Code() string { return "InvalidDescription" }
func (e *InvalidDescription) Error() string {
	return fmt.Sprintf("plugin %q: tool %q description must trim to 12-220 characters", e.PluginID, e.ToolID)
}

// InvalidToolCommand reports a tool with an empty command.
type InvalidToolCommand struct {
	PluginID string
	ToolID   string
}

func (e *InvalidToolCommand) Code() string { return "InvalidToolCommand" }
func (e *InvalidToolCommand) Error() string {
	return fmt.Sprintf("plugin %q: tool %q has an empty command", e.PluginID, e.ToolID)
}

// InvalidToolPolicyCommand reports a malformed allow_commands entry.
type InvalidToolPolicyCommand struct {
	PluginID string
	Command  string
}

func (e *InvalidToolPolicyCommand) Code() string { return "InvalidToolPolicyCommand" }
func (e *InvalidToolPolicyCommand) Error() string {
	return fmt.Sprintf("plugin %q: allow_commands entry %q is not a valid command basename", e.PluginID, e.Command)
}

// ToolCommandPolicyViolation reports a tool whose command basename is in
// neither the built-in default allowlist nor the plugin's own
// allow_commands, while the plugin is not in allow_any mode.
type ToolCommandPolicyViolation struct {
	PluginID string
	ToolID   string
	Command  string
}

func (e *ToolCommandPolicyViolation) Code() string { return "ToolCommandPolicyViolation" }
func (e *ToolCommandPolicyViolation) Error() string {
	return fmt.Sprintf("plugin %q: tool %q command %q is not authorized by any allowlist", e.PluginID, e.ToolID, e.Command)
}

// UnknownGateTool reports a gate entry (ci_fast/ci/flagship) referencing a
// tool id the owning plugin does not declare.
type UnknownGateTool struct {
	PluginID string
	GateTier string
	ToolID   string
}

func (e *UnknownGateTool) Code() string { return "UnknownGateTool" }
func (e *UnknownGateTool) Error() string {
	return fmt.Sprintf("plugin %q: gate %q references unknown tool %q", e.PluginID, e.GateTier, e.ToolID)
}

// InvalidCheckID reports a check whose id fails IDPattern.
type InvalidCheckID struct {
	PluginID string
	Kind     string
	CheckID  string
}

func (e *InvalidCheckID) Code() string { return "InvalidCheckId" }
func (e *InvalidCheckID) Error() string {
	return fmt.Sprintf("plugin %q: %s check id %q does not match the required pattern", e.PluginID, e.Kind, e.CheckID)
}

// DuplicateCheckID reports two plugins (or two checks in one plugin)
// declaring the same check id, regardless of kind.
type DuplicateCheckID struct {
	Kind            string
	CheckID         string
	PluginID        string
	PreviousPluginID string
}

func (e *DuplicateCheckID) Code() string { return "DuplicateCheckId" }
func (e *DuplicateCheckID) Error() string {
	return fmt.Sprintf("check id %q (kind %s) declared by both %q and %q", e.CheckID, e.Kind, e.PreviousPluginID, e.PluginID)
}

// InvalidImportGlob reports a malformed tool_import_globs pattern.
type InvalidImportGlob struct {
	PluginID string
	Pattern  string
}

func (e *InvalidImportGlob) Code() string { return "InvalidImportGlob" }
func (e *InvalidImportGlob) Error() string {
	return fmt.Sprintf("plugin %q: tool import glob %q is malformed", e.PluginID, e.Pattern)
}

// ReadImportedTool reports an unreadable file matched by tool_import_globs.
type ReadImportedTool struct {
	PluginID string
	Path     string
	Cause    string
}

func (e *ReadImportedTool) Code() string { return "ReadImportedTool" }
func (e *ReadImportedTool) Error() string {
	return fmt.Sprintf("plugin %q: could not read imported tool %s: %s", e.PluginID, e.Path, e.Cause)
}

// ParseImportedTool reports a malformed imported tool document.
type ParseImportedTool struct {
	PluginID string
	Path     string
	Cause    string
}

func (e *ParseImportedTool) Code() string { return "ParseImportedTool" }
func (e *ParseImportedTool) Error() string {
	return fmt.Sprintf("plugin %q: could not parse imported tool %s: %s", e.PluginID, e.Path, e.Cause)
}
