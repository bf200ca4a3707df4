package constants

const (
	AppName            = "worthit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/worthit/worthit.db"
	Version            = "v0.3.0"

	// Environment overrides
	EnvConfigPath   = "WORTHIT_CONFIG"
	EnvDBConnection = "WORTHIT_DB_CONNECTION"

	// Storage keys, one JSON array per collection
	EntriesKey   = "worthit_entries"
	BehaviorsKey = "worthit_behaviors"

	// DateFormat is the date format used in CLI output (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is the timestamp format used in CLI output
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "worthit-"

	// Similarity threshold used by FindSimilar and AutoGroup
	DefaultSimilarityThreshold = 0.5

	// Trend window: the 3 newest entries are compared with the next 3
	TrendWindowSize = 3
	// TrendMinEntries is the minimum number of entries before a trend is attempted
	TrendMinEntries = 3
	// TrendDelta is the change in resisted rate needed to leave "stable"
	TrendDelta = 0.1

	// MemoNoteMaxLen is a UI convention, not enforced by the stores
	MemoNoteMaxLen = 150

	DefaultRecentLimit = 5
)

type SessionState int

// Session States
const (
	StateEntries SessionState = iota
	StateBehaviors
	StateThread
	StateAddEntry
	StateAddMemo
	StateConfirmDelete
	StateConfirmGroup
)
