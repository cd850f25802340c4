// Package mocks provides mock implementations for testing the session and
// storage ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockSessionStore(ctrl)
//	mockStore.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with Save, Get, Delete.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/rentnest/rentnest-web/internal/ports SessionStore

// Generate mock for TokenVault interface from internal/ports package.
// This creates MockTokenVault with StoreToken, Token, PurgeAll.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_vault_mock.go github.com/rentnest/rentnest-web/internal/ports TokenVault

// Generate mock for ProfileFetcher interface from internal/ports package.
// This creates MockProfileFetcher with FetchProfile.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_fetcher_mock.go github.com/rentnest/rentnest-web/internal/ports ProfileFetcher
