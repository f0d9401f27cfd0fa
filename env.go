package corpora

import "os"

// Environment variable names for configuration.
const (
	// EnvCacheDir is the environment variable for the download cache directory.
	EnvCacheDir = "CORPORA_CACHE_DIR"
	// EnvDatasetsRoot is the environment variable for the datasets root
	// directory (where dummy data folders are created).
	EnvDatasetsRoot = "CORPORA_DATASETS_ROOT"
	// EnvOffline is the environment variable to forbid network access.
	// Cached downloads are still served.
	EnvOffline = "CORPORA_OFFLINE"
	// EnvDebug is the environment variable to enable debug logging.
	EnvDebug = "CORPORA_DEBUG"
)

// NewDownloadManagerFromEnv creates an HTTPDownloadManager configured from
// environment variables. It reads CORPORA_CACHE_DIR and CORPORA_OFFLINE;
// explicit options override values from the environment.
//
// Example:
//
//	dm, err := corpora.NewDownloadManagerFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dm.Close()
func NewDownloadManagerFromEnv(opts ...DownloadOption) (*HTTPDownloadManager, error) {
	envOpts := make([]DownloadOption, 0, 2)

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		envOpts = append(envOpts, WithCacheDir(dir))
	}

	if envBool(EnvOffline) {
		envOpts = append(envOpts, WithOffline(true))
	}

	// Explicit options take precedence over env options.
	allOpts := append(envOpts, opts...)

	return NewHTTPDownloadManager(allOpts...)
}

// envBool reports whether the named environment variable is set to a truthy
// value ("true" or "1").
func envBool(name string) bool {
	v := os.Getenv(name)
	return v == "true" || v == "1"
}
