package core

import "strings"

// ModuleID is a dotted namespace identifier such as "reminder.sqlite".
type ModuleID string

// Namespace returns the part of the ID before the first dot.
func (id ModuleID) Namespace() string {
	ns, _, _ := strings.Cut(string(id), ".")
	return ns
}

// ModuleInfo describes a registered module.
type ModuleInfo struct {
	ID  ModuleID
	New func() Module
}

// Module is implemented by every component that participates in the
// application lifecycle.
type Module interface {
	ModuleInfo() ModuleInfo
}
