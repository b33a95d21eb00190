// Package service provides the session-oriented layer between the drivers and
// the game engine.
//
// The service package implements:
//   - Multi-session game management
//   - Board lookup through a BoardLibrary
//   - Command parsing and turn resolution
//   - Turn history with pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// BoardLibrary hands out parsed boards by name.
//
// Concurrency:
//
// A Game is single-owner. The service holds one mutex around every operation,
// so any number of driver goroutines can share a GameService.
//
// Usage:
//
//	library, _ := boards.NewLibrary("")
//	gameService := service.NewGameService(session.NewManager(), library, logger)
//
//	info, err := gameService.CreateSession(ctx, "", "classic")
//	if err != nil {
//		return err
//	}
//
//	result, err := gameService.Play(ctx, info.ID, "right", false)
package service
