// Package cas specifies the optional out-of-process computer-algebra
// bridge: the contract the core calls for symbolic solving and
// verification, and the strict parser that converts CAS responses back
// into expressions.
//
// The bridge is optional by design. Its presence changes only confidence
// and the symbolic-vs-numerical verification path; every pipeline
// produces an answer without it. I/O, process management and response
// transport are entirely the bridge implementation's concern — the core
// sees four context-first, cancellable operations and nothing else.
//
// ⚠️ CAS output is untrusted input. ParseExpr accepts only the
// recognized grammar (numbers, variable names, log, ^, *, +, !,
// parentheses) and rejects everything else with ErrBadSyntax; a response
// is never decoded through the general expression JSON layer.
package cas
