// Package dispatch holds the operations syscli can perform and routes a
// parsed operation to its handler.
package dispatch

import (
	"fmt"
	"strings"
)

// Operation is one of the mutually exclusive things a syscli invocation can do.
// The zero value is not a valid operation.
type Operation int

const (
	Release Operation = iota + 1
	Update
)

// operationInfo describes an Operation on the command line.
type operationInfo struct {
	name    string // subcommand token, matched case-sensitively
	summary string // one-line help text
}

// operations lists every Operation in declaration order.
// Adding an operation means adding a constant above and an entry here.
var operations = []struct {
	op   Operation
	info operationInfo
}{
	{Release, operationInfo{name: "release", summary: "Release a new version"}},
	{Update, operationInfo{name: "update", summary: "Update system configuration"}},
}

// Operations returns all operations in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operations))
	for _, o := range operations {
		ops = append(ops, o.op)
	}
	return ops
}

// OperationNames returns the subcommand names of all operations, in declaration order.
func OperationNames() []string {
	names := make([]string, 0, len(operations))
	for _, o := range operations {
		names = append(names, o.info.name)
	}
	return names
}

func (o Operation) lookup() (operationInfo, bool) {
	for _, e := range operations {
		if e.op == o {
			return e.info, true
		}
	}
	return operationInfo{}, false
}

// Valid reports whether o is one of the declared operations.
func (o Operation) Valid() bool {
	_, ok := o.lookup()
	return ok
}

// String returns the subcommand name of the operation.
func (o Operation) String() string {
	if info, ok := o.lookup(); ok {
		return info.name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Summary returns the one-line description shown in help output.
func (o Operation) Summary() string {
	if info, ok := o.lookup(); ok {
		return info.summary
	}
	return "undeclared " + o.String()
}

// ParseOperation maps a subcommand token onto its Operation.
// The match is exact and case-sensitive; anything else is a *UsageError.
func ParseOperation(name string) (Operation, error) {
	for _, e := range operations {
		if e.info.name == name {
			return e.op, nil
		}
	}
	return 0, &UsageError{
		Msg: fmt.Sprintf("unrecognized subcommand %q (expected one of: %s)", name, strings.Join(OperationNames(), ", ")),
	}
}

// InvocationArguments is the result of parsing one process invocation.
type InvocationArguments struct {
	Op Operation
}
