package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
data:
  mongodb:
    database: geocontent
    strategy: weight
    master:
      uri: mongodb://master:27017
    slaves:
      - uri: mongodb://replica-a:27017
        weight: 3
      - uri: mongodb://replica-b:27017
      - logging: true
  redis:
    addr: localhost:6379
    db: 2
    dial_timeout: 2s
  meilisearch:
    host: http://localhost:7700
    index:
      layers: layers_v2
`

func TestGetConfig(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(sample)))

	c := GetConfig(v)

	assert.Equal(t, "geocontent", c.MongoDB.Database)
	assert.Equal(t, "mongodb://master:27017", c.MongoDB.Master.URI)
	require.Len(t, c.MongoDB.Slaves, 2)
	assert.Equal(t, 3, c.MongoDB.Slaves[0].Weight)
	assert.Equal(t, 1, c.MongoDB.Slaves[1].Weight)

	assert.Equal(t, 2, c.Redis.Db)
	assert.Equal(t, 2*time.Second, c.Redis.DialTimeout)

	assert.Equal(t, "layers_v2", c.Meilisearch.IndexFor("layers"))
	assert.Equal(t, "widgets", c.Meilisearch.IndexFor("widgets"))
}

func TestIndexForNil(t *testing.T) {
	var m *Meilisearch
	assert.Equal(t, "locations", m.IndexFor("locations"))
}
