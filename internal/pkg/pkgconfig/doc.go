// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a concrete implementation (Viper) that reads a YAML file
// and lets selected keys be overridden by environment variables, so secrets
// such as the upstream API key never have to live in the file. Business code
// depends on the Config interface only.
package pkgconfig
