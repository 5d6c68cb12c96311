// Package menu models hierarchical desktop menus: items, their owning
// container, and the change-notification protocol between them.
//
// An Item is one row of a Menu. Mutating an appearance-affecting field
// marks the item's lazily created row cache dirty and notifies the owning
// container so it can re-layout and redraw. Bookkeeping fields (target,
// action, tag, key equivalent, tooltip, indentation and the like) change
// silently. All operations are synchronous and single-threaded; the
// container back-reference and the submenu link are the only state shared
// across objects, and they are maintained by the container and the
// attachment logic, never concurrently.
package menu
