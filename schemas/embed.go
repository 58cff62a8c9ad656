// Package schemas embeds the JSON Schema documents shipped with the repository.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	Config          = "config.schema.json"
	ClusterProfiles = "cluster_profiles.schema.json"
)

// Read returns the content of the named schema file.
func Read(name string) (string, error) {
	data, err := FS.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
