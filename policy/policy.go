package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Admission modes.
const (
	ModeAsk  = "ask"  // ask before admitting every task
	ModeAuto = "auto" // admit automatically (default)
	ModeDeny = "deny" // admit nothing
)

// ErrRejected is returned for a task the policy does not admit.
var ErrRejected = errors.New("policy: task rejected")

// AskFunc is invoked when Mode==ask. Returning true admits the task.
type AskFunc func(ctx context.Context, name string, args []string, p *Policy) bool

// Policy filters tasks by name. A nil *Policy admits everything.
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
	Ask       AskFunc
}

// Config is the serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// FromConfig converts c to a runtime Policy (without AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// ToConfig converts p to a Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// IsAllowed evaluates the block and allow lists by case-insensitive task
// name. The block list wins; an empty allow list admits everything.
func (p *Policy) IsAllowed(name string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(name)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Admit returns nil when the task may be queued, or an error wrapping
// ErrRejected.
func (p *Policy) Admit(ctx context.Context, name string, args []string) error {
	if p == nil {
		return nil
	}
	switch p.Mode {
	case ModeDeny:
		return fmt.Errorf("task %v: mode %v: %w", name, p.Mode, ErrRejected)
	case ModeAsk:
		if p.Ask != nil && !p.Ask(ctx, name, args, p) {
			return fmt.Errorf("task %v: declined: %w", name, ErrRejected)
		}
	}
	if !p.IsAllowed(name) {
		return fmt.Errorf("task %v: not allowed: %w", name, ErrRejected)
	}
	return nil
}
