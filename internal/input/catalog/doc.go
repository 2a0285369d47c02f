// Package catalog defines the closed set of actions keys can be bound to.
//
// Every action has a stable name, a display title, and an optional
// preferences group. Actions without a group exist for code but are hidden
// from the bindings editor. The catalog never changes after construction;
// the binding registry rejects any name it does not contain.
package catalog
