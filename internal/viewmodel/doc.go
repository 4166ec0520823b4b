// Package viewmodel holds the screen state machines shared by every CRUD
// screen: the list snapshot, the modal lifecycle, the form draft and the
// toast queue. Controllers are safe for concurrent use and perform I/O only
// through the interfaces they are given.
package viewmodel
