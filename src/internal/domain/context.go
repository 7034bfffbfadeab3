package domain

type Config struct {
	Version string
	Host    string
	Port    string
	// RootDir is the directory served under WebPrefix.
	RootDir string
	// WatchAssets enables the informational asset watcher.
	WatchAssets bool
}

type Context struct {
	Config Config
}

// Addr is the listen address, e.g. ":8080" for all interfaces.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// BaseURL is the address printed for humans. The gateway is a local
// development tool, so it always points at localhost.
func (c Config) BaseURL() string {
	return "http://localhost:" + c.Port
}
