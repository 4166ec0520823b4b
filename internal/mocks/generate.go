// Package mocks provides gomock doubles for the hexagonal ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	backend := mocks.NewMockBackend(ctrl)
//	backend.EXPECT().Do(gomock.Any(), gomock.Any()).Return(ports.BackendResponse{Status: 200}, nil)
package mocks

// Backend: Do
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports Backend

// SessionStore: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports SessionStore
