package cli

import (
	calendarApp "github.com/felixgeelhaar/daybreak/internal/calendar/application"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/commands"
	"github.com/felixgeelhaar/daybreak/internal/planning/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Memo command handlers
	CreateMemoHandler   *commands.CreateMemoHandler
	AcceptMemoHandler   *commands.AcceptMemoHandler
	RejectMemoHandler   *commands.RejectMemoHandler
	CompleteMemoHandler *commands.CompleteMemoHandler
	UndoReactionHandler *commands.UndoReactionHandler
	ArchiveMemoHandler  *commands.ArchiveMemoHandler
	RolloverDayHandler  *commands.RolloverDayHandler

	// Memo query handlers
	ComputeSuggestionsHandler *queries.ComputeSuggestionsHandler
	GetMemoHandler            *queries.GetMemoHandler
	ListMemosHandler          *queries.ListMemosHandler

	// Calendar
	EventService *calendarApp.EventService
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
