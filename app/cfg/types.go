package cfg

import "time"

type Cfg struct {
	// Feeds
	FeedsFile   string
	SecretsFile string
	Check       bool

	// Network
	WiFiSSID        string
	WiFiPassword    string
	ProbeURL        string
	ConnectAttempts int
	ConnectBackoff  time.Duration
	UserAgent       string
	Timeout         time.Duration
	FetchInterval   time.Duration

	// Storage
	Storage    string
	ScratchDir string
	DBPath     string

	// Display
	Width      int
	Height     int
	Brightness float64
	Headless   bool
	Step       time.Duration
	Hold       time.Duration
	Banner     time.Duration
	Speed      int
	Padding    int

	// API
	Port         string
	APIAccessKey string

	// Application metadata
	Debug   bool
	LogFile string
	Version string
}
