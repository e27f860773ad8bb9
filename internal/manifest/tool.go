package manifest

import "strings"

// Default resource limits applied when a tool omits them.
const (
	DefaultTimeoutMS      = 600000
	DefaultMaxStdoutBytes = 20000
	DefaultMaxStderrBytes = 20000
)

// ReceiptContract optionally constrains what a tool's run receipt must show
// to count as evidence (e.g. ratchet's receipt_defaults apply here too).
type ReceiptContract struct {
	MinDurationMS   *int `toml:"min_duration_ms" json:"min_duration_ms,omitempty"`
	MinStdoutBytes  *int `toml:"min_stdout_bytes" json:"min_stdout_bytes,omitempty"`
}

// ProjectTool is an executable contract: one tool a plugin can run, or a
// gate can reference.
type ProjectTool struct {
	ID              string            `toml:"id" json:"id"`
	Description     string            `toml:"description" json:"description"`
	Command         string            `toml:"command" json:"command"`
	Args            []string          `toml:"args" json:"args"`
	Cwd             *string           `toml:"cwd" json:"cwd,omitempty"`
	TimeoutMS       *int              `toml:"timeout_ms" json:"timeout_ms,omitempty"`
	MaxStdoutBytes  *int              `toml:"max_stdout_bytes" json:"max_stdout_bytes,omitempty"`
	MaxStderrBytes  *int              `toml:"max_stderr_bytes" json:"max_stderr_bytes,omitempty"`
	Env             map[string]string `toml:"env" json:"env,omitempty"`
	ReceiptContract *ReceiptContract  `toml:"receipt_contract" json:"receipt_contract,omitempty"`
}

// EffectiveTimeoutMS returns the tool's timeout or the built-in default.
func (t ProjectTool) EffectiveTimeoutMS() int {
	if t.TimeoutMS != nil {
		return *t.TimeoutMS
	}
	return DefaultTimeoutMS
}

// EffectiveMaxStdoutBytes returns the tool's stdout cap or the built-in default.
func (t ProjectTool) EffectiveMaxStdoutBytes() int {
	if t.MaxStdoutBytes != nil {
		return *t.MaxStdoutBytes
	}
	return DefaultMaxStdoutBytes
}

// EffectiveMaxStderrBytes returns the tool's stderr cap or the built-in default.
func (t ProjectTool) EffectiveMaxStderrBytes() int {
	if t.MaxStderrBytes != nil {
		return *t.MaxStderrBytes
	}
	return DefaultMaxStderrBytes
}

// TrimmedDescription returns the description with surrounding whitespace removed.
func (t ProjectTool) TrimmedDescription() string {
	return strings.TrimSpace(t.Description)
}

// CommandBasename returns the lowercased basename of the tool's command,
// stripping any path prefix (forward or backward slash).
func CommandBasename(command string) string {
	c := strings.TrimSpace(command)
	if idx := strings.LastIndexAny(c, `/\`); idx >= 0 {
		c = c[idx+1:]
	}
	return strings.ToLower(strings.TrimSpace(c))
}

// ToolExecutionPolicyMode selects how a plugin's commands are authorized.
type ToolExecutionPolicyMode string

const (
	PolicyModeAllowlist ToolExecutionPolicyMode = "allowlist"
	PolicyModeAllowAny  ToolExecutionPolicyMode = "allow_any"
)

// ToolExecutionPolicy is a plugin's command-execution authorization policy.
type ToolExecutionPolicy struct {
	Mode          ToolExecutionPolicyMode `toml:"mode" json:"mode"`
	AllowCommands []string                `toml:"allow_commands" json:"allow_commands"`
}

// DefaultAllowedCommands is the built-in allowlist of command basenames
// permitted regardless of any plugin's own allow_commands.
var DefaultAllowedCommands = []string{
	"cargo", "cargo-nextest", "python", "python3", "node", "npm", "pnpm",
	"yarn", "go", "dotnet", "cmake", "ctest", "bash", "sh", "pwsh",
	"powershell", "make", "just", "echo", "uv", "pytest", "ruff", "mypy",
	"clang", "clang++", "gcc", "g++", "csc", "msbuild",
}
