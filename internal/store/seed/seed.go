// Package seed bundles the sample dataset used to populate the local cache
// the first time a collection is served from the fallback, and by cmd/seed
// to initialize the remote database.
package seed

import "embed"

//go:embed *.json
var files embed.FS

// Data returns the bundled JSON collection for a collection key, or nil when
// no sample data is bundled for it.
func Data(collection string) []byte {
	data, err := files.ReadFile(collection + ".json")
	if err != nil {
		return nil
	}
	return data
}
