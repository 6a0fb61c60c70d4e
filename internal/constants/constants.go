// Package constants holds app-wide names and defaults.
package constants

// AppName names the data directory (~/.tap) and the log file.
const AppName = "tap"

// Files inside the data directory.
const (
	DBFile     = "notes.db"
	ConfigFile = "config.toml"
	StateFile  = "state.json"
	LogFile    = "tap.log"
)

// Seed note created when the database has no notes.
const (
	WelcomeTitle   = "Welcome"
	WelcomeContent = "Welcome to your new note-taking app!"
)

// UntitledPrefix starts the title of every new note ("Untitled 3").
const UntitledPrefix = "Untitled"

// UntitledNote replaces a title left blank when the stored one is blank too.
const UntitledNote = "Untitled Note"

// Editor and layout defaults.
const (
	DefaultListWidth = 28
	MinListWidth     = 12
	SoftTabWidth     = 4
	DefaultTheme     = "dark"
)
