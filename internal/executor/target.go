package executor

import "fmt"

// Target selects either a single host or a named group of hosts.
// Group membership is resolved by the gateway, never by callers.
type Target struct {
	name  string
	group bool
}

// Host selects a single host by identifier.
func Host(name string) Target {
	return Target{name: name}
}

// Group selects a named group of hosts.
func Group(name string) Target {
	return Target{name: name, group: true}
}

// Name returns the host or group identifier.
func (t Target) Name() string { return t.name }

// IsGroup reports whether the target names a group.
func (t Target) IsGroup() bool { return t.group }

func (t Target) String() string {
	if t.group {
		return fmt.Sprintf("group %s", t.name)
	}
	return fmt.Sprintf("host %s", t.name)
}
