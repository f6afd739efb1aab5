// Package config loads the service configuration with Viper.
//
// Values come from a YAML, JSON or TOML file, then from environment
// variables prefixed with GEOCONTENT (GEOCONTENT_SERVER_PORT overrides
// server.port). Example:
//
//	app_name: geocontent
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	logger:
//	  level: 4
//	  format: json
//	query:
//	  default_limit: 50
//	  max_result_window: 10000
//	  keys:
//	    cursor: page.cursor
//	data:
//	  mongodb:
//	    database: geocontent
//	    master:
//	      uri: mongodb://localhost:27017
//	  redis:
//	    addr: localhost:6379
//	  meilisearch:
//	    host: http://localhost:7700
//
// Watch reloads the file on change.
package config
