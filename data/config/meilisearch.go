package config

import "github.com/spf13/viper"

// Meilisearch meilisearch config struct
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
	// Index names the index searched for each collection; collections
	// without an entry use their own name.
	Index map[string]string `json:"index" yaml:"index"`
}

// getMeilisearchConfigs reads Meilisearch configurations
func getMeilisearchConfigs(v *viper.Viper) *Meilisearch {
	return &Meilisearch{
		Host:   v.GetString("data.meilisearch.host"),
		APIKey: v.GetString("data.meilisearch.api_key"),
		Index:  v.GetStringMapString("data.meilisearch.index"),
	}
}

// IndexFor returns the index searched for collection.
func (m *Meilisearch) IndexFor(collection string) string {
	if m != nil {
		if idx, ok := m.Index[collection]; ok && idx != "" {
			return idx
		}
	}
	return collection
}
