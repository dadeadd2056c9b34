package storage

import _ "embed"

// seedSnapshot is the built-in demo dataset, used once when neither a
// persisted blob nor a configured seed file exists.
//
//go:embed seed.json
var seedSnapshot []byte
