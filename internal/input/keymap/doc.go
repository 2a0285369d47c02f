// Package keymap maps physical key bindings to catalog actions.
//
// The Registry keeps, for every action in the catalog, an ordered list of
// bindings and the callback to run. A binding triggers at most one action.
// When two actions list the same binding the first to claim it keeps it;
// the other holds it as a shadowed binding until the owner lets go.
//
// # Resolution
//
// Execute resolves a captured binding in three tiers:
//
//  1. Exact: the binding itself.
//  2. Fuzzy: a binding on the same key whose modifier mask overlaps the
//     event's. This absorbs modifiers a platform adds on its own, such as
//     Mod2 while Num Lock is on. Ties go to the largest overlap, then the
//     fewest stored modifiers missing from the event, then the earliest
//     claim.
//  3. Bare: the key with no modifiers.
//
// # Persistence
//
// EditBinding and ClearBinding save the whole registry through a Store
// before returning. Register never saves. FileStore writes
// action -> ["<Control>s", ...] as JSON or YAML, replacing the file
// atomically:
//
//	{
//	  "next page": [
//	    "Page_Down",
//	    "KP_Page_Down"
//	  ],
//	  "zoom in": [
//	    "plus",
//	    "KP_Add",
//	    "equal"
//	  ]
//	}
package keymap
