// Package nav implements the reader's navigation state machine.
//
// A [Controller] owns the single [State] of a reading session: the current
// [Mode] (Search, Results or Article), the history of visited article paths,
// the current document, the focused link, and the last search results. State
// changes only through the controller's transition methods; each method runs
// to completion, including any archive access, before it returns.
//
//	Search ──Submit──▶ Results ──OpenResult──▶ Article ──Follow──▶ Article
//	   ▲                                          │
//	   └────────────── EnterSearch ◀──────────────┘  Back: pop + re-fetch
//
// Forward navigation pushes onto the history. Back pops the current path and
// re-fetches the new top; documents are never cached. A failed fetch leaves
// the history untouched and shows a placeholder document reading
// "Error: <cause> <path>".
//
// Link focus cycles through the current document's links in index order
// with wrap-around. [CenterOffset] computes the scroll offset that centers a
// focused block in a viewport.
package nav
