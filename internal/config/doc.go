// Package config holds the crawler configuration.
//
// Configuration comes from three places, in increasing precedence:
// built-in defaults, the optional .spokescrawl YAML file, and CLI flags.
// The CLI layer builds a Config from flags and hands it down via
// dependency injection; there is no global configuration state.
package config
