// Package controller owns the task list and keeps it, its rendered rows and
// its persisted copy in step.
//
// A Controller is driven through two named intents:
//
//   - "submit" adds a task, either from explicit text or from the surface's
//     input field.
//   - "remove" detaches a row and drops the first task with that row's text.
//
// plus Initialize, which renders whatever the store already holds without
// writing it back. After every completed mutation the store holds the JSON
// encoding of the in-memory list.
//
// Rows carry a random RowID so surfaces can address them. Tasks themselves
// have no identity beyond their text: removing one of two identical tasks
// removes the first entry in the list, whichever row was clicked.
package controller
